package dto

import "time"

// CreateUserRequest body del POST /usuarios/admin.
type CreateUserRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RolID    *int   `json:"rolId"`
}

// UpdateUserRequest body del PATCH /usuarios/admin/:id. Campos opcionales.
type UpdateUserRequest struct {
	Nombre *string `json:"nombre"`
	Email  *string `json:"email"`
	RolID  *int    `json:"rolId"`
}

// UserAdminResponse vista completa de un usuario (solo admin).
type UserAdminResponse struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	RolID     int       `json:"rolId"`
	AvatarKey string    `json:"avatarKey,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPublicResponse vista reducida para el listado público.
type UserPublicResponse struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	RolID     int       `json:"rolId"`
	CreatedAt time.Time `json:"createdAt"`
}
