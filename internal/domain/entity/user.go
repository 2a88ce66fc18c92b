package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = 1
	RoleUser  = 2
)

// ValidRole indica si id es un rol conocido.
func ValidRole(id int) bool {
	return id == RoleAdmin || id == RoleUser
}

// User usuario de la aplicación. AvatarKey referencia el blob del avatar en
// el store de objetos; vacío = sin avatar.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	RoleID       int
	AvatarKey    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserChanges conjunto de cambios de un PATCH admin sobre un usuario.
type UserChanges struct {
	Name   *string
	Email  *string
	RoleID *int
}

// Empty indica si no hay ningún campo por actualizar.
func (c UserChanges) Empty() bool {
	return c.Name == nil && c.Email == nil && c.RoleID == nil
}
