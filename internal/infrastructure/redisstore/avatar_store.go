package redisstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestioncom-api/internal/application/user"
	"github.com/redis/go-redis/v9"
)

var _ user.AvatarStore = (*AvatarStore)(nil)

// AvatarStore guarda los blobs de avatares en Redis. Cada avatar es un hash
// con los bytes y su content type; sin TTL (viven hasta que se reemplazan).
type AvatarStore struct {
	client *redis.Client
}

// NewAvatarStore construye el store sobre un cliente Redis.
func NewAvatarStore(client *redis.Client) *AvatarStore {
	return &AvatarStore{client: client}
}

// Put guarda el blob bajo key.
func (s *AvatarStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := s.client.HSet(ctx, key, "data", data, "content_type", contentType).Err(); err != nil {
		return fmt.Errorf("guardar avatar: %w", err)
	}
	return nil
}

// Get devuelve los bytes y el content type; ErrAvatarNotFound si no existe.
func (s *AvatarStore) Get(ctx context.Context, key string) ([]byte, string, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, "", fmt.Errorf("leer avatar: %w", err)
	}
	data, ok := fields["data"]
	if !ok {
		return nil, "", user.ErrAvatarNotFound
	}
	return []byte(data), fields["content_type"], nil
}

// Delete elimina el blob. Borrar una key inexistente no es error.
func (s *AvatarStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("eliminar avatar: %w", err)
	}
	return nil
}
