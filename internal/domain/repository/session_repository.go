package repository

import (
	"context"
	"time"
)

// SessionRepository registra las sesiones (jti) cerradas antes de su expiración.
type SessionRepository interface {
	Revoke(ctx context.Context, tokenID, accountID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
