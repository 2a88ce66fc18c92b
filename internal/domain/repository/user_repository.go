package repository

import (
	"context"

	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para User.
type UserRepository interface {
	Insert(ctx context.Context, u *entity.User) (int64, error)
	// FindByID devuelve nil (sin error) cuando la fila no existe.
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	// FindByEmail devuelve nil (sin error) cuando no hay usuario con ese email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdatePartial devuelve false cuando el UPDATE no afectó filas.
	UpdatePartial(ctx context.Context, id int64, changes entity.UserChanges) (bool, error)
	UpdateAvatarKey(ctx context.Context, id int64, key string) (bool, error)
	// Remove devuelve false cuando la fila no existía.
	Remove(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, params ListParams) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}
