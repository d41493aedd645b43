package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-negocios/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo registra en revoked_sessions los jti cerrados con logout.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador de sesiones revocadas.
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Revoke marca el jti como cerrado. Revocar dos veces no es error.
func (r *SessionRepo) Revoke(ctx context.Context, tokenID, accountID string, expiresAt time.Time) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO revoked_sessions (jti, account_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (jti) DO NOTHING`,
		tokenID, accountID, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked informa si el jti fue cerrado.
func (r *SessionRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_sessions WHERE jti = $1)`, tokenID,
	).Scan(&revoked)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, fmt.Errorf("is revoked: %w", err)
	}
	return revoked, nil
}

// PurgeExpired borra los registros cuyo token ya expiró (ya no pueden usarse de todos modos).
func (r *SessionRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM revoked_sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
