package auth

import (
	"context"
	"time"
)

// SessionStore guarda las sesiones de refresh (una por JTI) con TTL. El
// refresh rota: Consume invalida la sesión al usarla.
type SessionStore interface {
	Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error
	// Consume devuelve el userID de la sesión y la elimina; ok=false si no
	// existe (revocada, rotada o expirada).
	Consume(ctx context.Context, jti string) (userID int64, ok bool, err error)
	Revoke(ctx context.Context, jti string) error
}
