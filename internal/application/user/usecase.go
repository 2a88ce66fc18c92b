// Package user implementa la gestión de usuarios: CRUD admin, listado
// público y avatares.
package user

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/jhoicas/gestioncom-api/internal/application/dto"
	"github.com/jhoicas/gestioncom-api/internal/domain"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
	"github.com/jhoicas/gestioncom-api/pkg/password"
)

var emailRegex = regexp.MustCompile(`^[^\s,@]+@[^\s,@]+\.[^\s,@]+$`)

const (
	minPasswordLen = 10
	maxEmailLen    = 30
)

// Tipos MIME aceptados para avatares.
var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// PatchOutcome resultado de un patch admin (tres vías).
type PatchOutcome int

const (
	PatchApplied PatchOutcome = iota
	PatchNoChange
	PatchNotFound
)

// UseCase casos de uso de usuarios.
type UseCase struct {
	repo           repository.UserRepository
	avatars        AvatarStore
	maxUploadBytes int64
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.UserRepository, avatars AvatarStore, maxUploadBytes int64) *UseCase {
	return &UseCase{repo: repo, avatars: avatars, maxUploadBytes: maxUploadBytes}
}

// Create crea un usuario desde el panel admin: valida email y política de
// contraseña, hashea con Argon2id, inserta y relee para confirmar.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserAdminResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !ValidEmail(email) {
		return nil, domain.NewValidation(domain.CodeEmailInvalid)
	}
	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrUserRepoUnavailable
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	name := strings.TrimSpace(in.Nombre)
	if name == "" {
		return nil, domain.NewValidation(domain.CodeNameRequired)
	}
	roleID := entity.RoleUser
	if in.RolID != nil {
		roleID = *in.RolID
	}
	if !entity.ValidRole(roleID) {
		return nil, domain.NewValidation(domain.CodeRolInvalid)
	}
	if err := CheckPasswordPolicy(in.Password); err != nil {
		return nil, err
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, domain.ErrInternal
	}

	id, err := uc.repo.Insert(ctx, &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		RoleID:       roleID,
	})
	if err != nil {
		if err == domain.ErrEmailTaken {
			return nil, err
		}
		return nil, domain.ErrUserRepoUnavailable
	}

	row, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrUserRepoUnavailable
	}
	if row == nil {
		return nil, domain.ErrReadBackFailed
	}
	resp := toAdminResponse(*row)
	return &resp, nil
}

// Patch aplica un subconjunto de {nombre, email, rolId} (tres vías).
func (uc *UseCase) Patch(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserAdminResponse, PatchOutcome, error) {
	if id <= 0 {
		return nil, PatchApplied, domain.NewValidation(domain.CodeInvalidID)
	}

	current, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, PatchApplied, domain.ErrUserRepoUnavailable
	}
	if current == nil {
		return nil, PatchNotFound, nil
	}

	var changes entity.UserChanges
	if in.Nombre != nil {
		name := strings.TrimSpace(*in.Nombre)
		if name == "" {
			return nil, PatchApplied, domain.NewValidation(domain.CodeNameRequired)
		}
		changes.Name = &name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !ValidEmail(email) {
			return nil, PatchApplied, domain.NewValidation(domain.CodeEmailInvalid)
		}
		if email != current.Email {
			existing, err := uc.repo.FindByEmail(ctx, email)
			if err != nil {
				return nil, PatchApplied, domain.ErrUserRepoUnavailable
			}
			if existing != nil {
				return nil, PatchApplied, domain.ErrEmailTaken
			}
		}
		changes.Email = &email
	}
	if in.RolID != nil {
		if !entity.ValidRole(*in.RolID) {
			return nil, PatchApplied, domain.NewValidation(domain.CodeRolInvalid)
		}
		changes.RoleID = in.RolID
	}

	if changes.Empty() {
		return nil, PatchNoChange, nil
	}

	affected, err := uc.repo.UpdatePartial(ctx, id, changes)
	if err != nil {
		if err == domain.ErrEmailTaken {
			return nil, PatchApplied, err
		}
		return nil, PatchApplied, domain.ErrUserRepoUnavailable
	}
	if !affected {
		return nil, PatchNoChange, nil
	}

	row, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, PatchApplied, domain.ErrUserRepoUnavailable
	}
	if row == nil {
		return nil, PatchNotFound, nil
	}
	resp := toAdminResponse(*row)
	return &resp, PatchApplied, nil
}

// Remove borra el usuario; movimientos que lo referencian suben como USER_IN_USE.
func (uc *UseCase) Remove(ctx context.Context, id int64) (found bool, err error) {
	if id <= 0 {
		return false, domain.NewValidation(domain.CodeInvalidID)
	}
	current, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return false, domain.ErrUserRepoUnavailable
	}
	if current == nil {
		return false, nil
	}
	found, err = uc.repo.Remove(ctx, id)
	if err != nil {
		if err == domain.ErrUserInUse {
			return false, err
		}
		return false, domain.ErrUserRepoUnavailable
	}
	return found, nil
}

// ListPublic devuelve la vista reducida paginada.
func (uc *UseCase) ListPublic(ctx context.Context, page dto.PageRequest) ([]dto.UserPublicResponse, *dto.PageMeta, error) {
	rows, meta, err := uc.list(ctx, page)
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.UserPublicResponse, 0, len(rows))
	for _, u := range rows {
		items = append(items, dto.UserPublicResponse{
			ID:        u.ID,
			Nombre:    u.Name,
			RolID:     u.RoleID,
			CreatedAt: u.CreatedAt,
		})
	}
	return items, meta, nil
}

// ListAdmin devuelve la vista completa paginada.
func (uc *UseCase) ListAdmin(ctx context.Context, page dto.PageRequest) ([]dto.UserAdminResponse, *dto.PageMeta, error) {
	rows, meta, err := uc.list(ctx, page)
	if err != nil {
		return nil, nil, err
	}
	items := make([]dto.UserAdminResponse, 0, len(rows))
	for _, u := range rows {
		items = append(items, toAdminResponse(u))
	}
	return items, meta, nil
}

func (uc *UseCase) list(ctx context.Context, page dto.PageRequest) ([]entity.User, *dto.PageMeta, error) {
	page.Normalize("created_at")

	rows, err := uc.repo.List(ctx, repository.ListParams{
		Limit:    page.Limit,
		Offset:   page.Offset,
		OrderBy:  page.OrderBy,
		OrderDir: page.OrderDir,
	})
	if err != nil {
		return nil, nil, domain.ErrUserRepoUnavailable
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, nil, domain.ErrUserRepoUnavailable
	}
	return rows, &dto.PageMeta{
		Total:    total,
		Limit:    page.Limit,
		Offset:   page.Offset,
		OrderBy:  page.OrderBy,
		OrderDir: page.OrderDir,
	}, nil
}

// UploadAvatar valida tamaño y MIME, guarda el blob bajo una clave nueva y
// actualiza la referencia en la fila del usuario. La clave anterior se borra
// en best-effort (el blob huérfano no es un error del request).
func (uc *UseCase) UploadAvatar(ctx context.Context, userID int64, data []byte, contentType string) (string, error) {
	if userID <= 0 {
		return "", domain.NewValidation(domain.CodeInvalidID)
	}
	if len(data) == 0 {
		return "", domain.NewValidation(domain.CodeImageFileRequired)
	}
	if int64(len(data)) > uc.maxUploadBytes {
		return "", domain.NewValidation(domain.CodeImageTooLarge)
	}
	if !allowedAvatarTypes[contentType] {
		return "", domain.NewValidation(domain.CodeImageInvalidType)
	}

	current, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return "", domain.ErrUserRepoUnavailable
	}
	if current == nil {
		return "", domain.ErrInvalidCredentials
	}

	key := fmt.Sprintf("avatars/%d-%s", userID, uuid.New().String())
	if err := uc.avatars.Put(ctx, key, data, contentType); err != nil {
		return "", domain.ErrInternal
	}
	if _, err := uc.repo.UpdateAvatarKey(ctx, userID, key); err != nil {
		return "", domain.ErrUserRepoUnavailable
	}
	if current.AvatarKey != "" {
		_ = uc.avatars.Delete(ctx, current.AvatarKey)
	}
	return key, nil
}

// GetAvatar devuelve los bytes y content type del avatar de un usuario.
// found=false cuando el usuario no existe o no tiene avatar.
func (uc *UseCase) GetAvatar(ctx context.Context, userID int64) (data []byte, contentType string, found bool, err error) {
	if userID <= 0 {
		return nil, "", false, domain.NewValidation(domain.CodeInvalidID)
	}
	row, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", false, domain.ErrUserRepoUnavailable
	}
	if row == nil || row.AvatarKey == "" {
		return nil, "", false, nil
	}
	data, contentType, err = uc.avatars.Get(ctx, row.AvatarKey)
	if err != nil {
		if err == ErrAvatarNotFound {
			return nil, "", false, nil
		}
		return nil, "", false, domain.ErrInternal
	}
	return data, contentType, true, nil
}

// CheckPasswordPolicy valida el mínimo de 10 caracteres con al menos una
// mayúscula y un dígito.
func CheckPasswordPolicy(raw string) error {
	if len(raw) < minPasswordLen {
		return domain.NewValidation(domain.CodePasswordTooShort)
	}
	var hasUpper, hasDigit bool
	for _, r := range raw {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if !hasUpper || !hasDigit {
		return domain.NewValidation(domain.CodePasswordWeak)
	}
	return nil
}

// ValidEmail expone la validación de email para el módulo de auth.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email) && len(email) <= maxEmailLen
}

func toAdminResponse(u entity.User) dto.UserAdminResponse {
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
