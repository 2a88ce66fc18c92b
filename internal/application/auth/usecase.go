// Package auth implementa registro, login y el ciclo de refresh con
// rotación de sesiones.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/gestioncom-api/internal/application/dto"
	"github.com/jhoicas/gestioncom-api/internal/application/user"
	"github.com/jhoicas/gestioncom-api/internal/domain"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
	"github.com/jhoicas/gestioncom-api/pkg/jwt"
	"github.com/jhoicas/gestioncom-api/pkg/password"
)

// JWTConfig configuración para emisión de tokens.
type JWTConfig struct {
	Secret         string
	ExpMinutes     int
	RefreshMinutes int
	Issuer         string
}

// UseCase casos de uso de autenticación.
type UseCase struct {
	userRepo repository.UserRepository
	sessions SessionStore
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, sessions SessionStore, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, sessions: sessions, jwtCfg: jwtCfg}
}

// Register crea un usuario público (siempre rol usuario) y devuelve su par
// de tokens.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenPairResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !user.ValidEmail(email) {
		return nil, domain.NewValidation(domain.CodeEmailInvalid)
	}
	name := strings.TrimSpace(in.Nombre)
	if name == "" {
		return nil, domain.NewValidation(domain.CodeNameRequired)
	}
	if err := user.CheckPasswordPolicy(in.Password); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrAuthRepoUnavailable
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, domain.ErrInternal
	}
	id, err := uc.userRepo.Insert(ctx, &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		RoleID:       entity.RoleUser,
	})
	if err != nil {
		if err == domain.ErrEmailTaken {
			return nil, err
		}
		return nil, domain.ErrAuthRepoUnavailable
	}

	row, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrAuthRepoUnavailable
	}
	if row == nil {
		return nil, domain.ErrReadBackFailed
	}
	return uc.issuePair(ctx, row)
}

// Login verifica credenciales con Argon2id y emite el par de tokens.
// Email inexistente y password incorrecto responden igual (sin oráculo).
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenPairResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	row, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrAuthRepoUnavailable
	}
	if row == nil {
		return nil, domain.ErrInvalidCredentials
	}
	ok, err := password.Verify(in.Password, row.PasswordHash)
	if err != nil || !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issuePair(ctx, row)
}

// Refresh valida el refresh token, consume su sesión (rotación: un refresh
// solo se usa una vez) y emite un par nuevo.
func (uc *UseCase) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	userID, _, jti, err := jwt.ParseRefresh(uc.jwtCfg.Secret, refreshToken)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, domain.ErrRefreshExpired
		}
		return nil, domain.ErrRefreshInvalid
	}
	sessionUserID, ok, err := uc.sessions.Consume(ctx, jti)
	if err != nil {
		return nil, domain.ErrAuthRepoUnavailable
	}
	if !ok || sessionUserID != userID {
		return nil, domain.ErrRefreshInvalid
	}

	row, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrAuthRepoUnavailable
	}
	if row == nil {
		return nil, domain.ErrRefreshInvalid
	}
	return uc.issuePair(ctx, row)
}

// Logout revoca la sesión del refresh token. Token inválido no es error:
// el logout es idempotente.
func (uc *UseCase) Logout(ctx context.Context, refreshToken string) error {
	_, _, jti, err := jwt.ParseRefresh(uc.jwtCfg.Secret, refreshToken)
	if err != nil {
		return nil
	}
	return uc.sessions.Revoke(ctx, jti)
}

// Profile devuelve los datos del usuario autenticado; nil si ya no existe.
func (uc *UseCase) Profile(ctx context.Context, userID int64) (*dto.UserAdminResponse, error) {
	row, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrAuthRepoUnavailable
	}
	if row == nil {
		return nil, nil
	}
	resp := toUserResponse(*row)
	return &resp, nil
}

func (uc *UseCase) issuePair(ctx context.Context, u *entity.User) (*dto.TokenPairResponse, error) {
	access, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.RoleID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, domain.ErrInternal
	}
	refresh, jti, err := jwt.GenerateRefresh(uc.jwtCfg.Secret, u.ID, u.RoleID, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshMinutes)
	if err != nil {
		return nil, domain.ErrInternal
	}
	ttl := time.Duration(uc.jwtCfg.RefreshMinutes) * time.Minute
	if err := uc.sessions.Save(ctx, jti, u.ID, ttl); err != nil {
		return nil, domain.ErrAuthRepoUnavailable
	}
	return &dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(*u),
	}, nil
}

func toUserResponse(u entity.User) dto.UserAdminResponse {
	return dto.UserAdminResponse{
		ID:        u.ID,
		Nombre:    u.Name,
		Email:     u.Email,
		RolID:     u.RoleID,
		AvatarKey: u.AvatarKey,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
