package user

import (
	"context"
	"errors"
)

// ErrAvatarNotFound el objeto no existe en el store.
var ErrAvatarNotFound = errors.New("avatar: objeto no encontrado")

// AvatarStore puerto del almacenamiento de blobs de avatares. La mecánica de
// subida al backend concreto queda detrás de esta interfaz.
type AvatarStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get devuelve los bytes y el content type; ErrAvatarNotFound si no existe.
	Get(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
}
