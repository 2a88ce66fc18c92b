package dto

// RegisterRequest body del POST /auth/register (siempre rol usuario).
type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest body del POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest body del POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenPairResponse par de tokens emitidos en login y refresh.
type TokenPairResponse struct {
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
	User         UserAdminResponse `json:"user"`
}
