package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/gestioncom-api/internal/application/auth"
	"github.com/redis/go-redis/v9"
)

var _ auth.SessionStore = (*SessionStore)(nil)

const sessionPrefix = "session:"

// SessionStore guarda las sesiones de refresh en Redis (una key por JTI con
// TTL igual a la vigencia del refresh token).
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore construye el store sobre un cliente Redis.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save registra la sesión del JTI apuntando al userID.
func (s *SessionStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionPrefix+jti, userID, ttl).Err(); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Consume devuelve el userID de la sesión y la elimina en la misma operación
// (rotación). ok=false si la sesión no existe.
func (s *SessionStore) Consume(ctx context.Context, jti string) (int64, bool, error) {
	val, err := s.client.GetDel(ctx, sessionPrefix+jti).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("consumir sesión: %w", err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("sesión corrupta: %w", err)
	}
	return userID, true, nil
}

// Revoke elimina la sesión del JTI. Idempotente.
func (s *SessionStore) Revoke(ctx context.Context, jti string) error {
	if err := s.client.Del(ctx, sessionPrefix+jti).Err(); err != nil {
		return fmt.Errorf("revocar sesión: %w", err)
	}
	return nil
}
