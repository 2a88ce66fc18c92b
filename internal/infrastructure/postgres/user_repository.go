package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestioncom-api/internal/domain"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

var userOrderColumns = map[string]string{
	"id":         "id",
	"nombre":     "name",
	"email":      "email",
	"rol":        "role_id",
	"created_at": "created_at",
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Insert persiste un usuario nuevo y devuelve el id asignado.
func (r *UserRepo) Insert(ctx context.Context, u *entity.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, password_hash, role_id, avatar_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query, u.Name, u.Email, u.PasswordHash, u.RoleID, u.AvatarKey).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrEmailTaken
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// FindByID obtiene un usuario por ID. Devuelve nil si no existe.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByEmail obtiene un usuario por email. Devuelve nil si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepo) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `
		SELECT id, name, email, password_hash, role_id, avatar_key, created_at, updated_at
		FROM users ` + where
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.AvatarKey, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// UpdatePartial aplica solo los campos presentes en changes. Devuelve false si el UPDATE no afectó filas.
func (r *UserRepo) UpdatePartial(ctx context.Context, id int64, changes entity.UserChanges) (bool, error) {
	sets := make([]string, 0, 3)
	args := []any{id}
	pos := 2
	if changes.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", pos))
		args = append(args, *changes.Name)
		pos++
	}
	if changes.Email != nil {
		sets = append(sets, fmt.Sprintf("email = $%d", pos))
		args = append(args, *changes.Email)
		pos++
	}
	if changes.RoleID != nil {
		sets = append(sets, fmt.Sprintf("role_id = $%d", pos))
		args = append(args, *changes.RoleID)
		pos++
	}
	if len(sets) == 0 {
		return false, nil
	}
	query := "UPDATE users SET " + strings.Join(sets, ", ") + ", updated_at = now() WHERE id = $1"
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrEmailTaken
		}
		return false, fmt.Errorf("update user: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// UpdateAvatarKey guarda la referencia del avatar del usuario.
func (r *UserRepo) UpdateAvatarKey(ctx context.Context, id int64, key string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE users SET avatar_key = $2, updated_at = now() WHERE id = $1`, id, key,
	)
	if err != nil {
		return false, fmt.Errorf("update avatar key: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Remove elimina un usuario por ID. Devuelve false si la fila no existía.
func (r *UserRepo) Remove(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrUserInUse
		}
		return false, fmt.Errorf("delete user: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List lista usuarios con paginación y ordenamiento.
func (r *UserRepo) List(ctx context.Context, params repository.ListParams) ([]entity.User, error) {
	query := `
		SELECT id, name, email, password_hash, role_id, avatar_key, created_at, updated_at
		FROM users
		ORDER BY ` + orderClause(userOrderColumns, params.OrderBy, "created_at", params.OrderDir) + `
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.AvatarKey,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Count devuelve el total de usuarios.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}
