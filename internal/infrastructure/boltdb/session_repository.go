package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/jhoicas/inventario-negocios/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

type revokedSession struct {
	AccountID string    `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionRepo guarda los jti revocados en "sessions".
type SessionRepo struct {
	db *bolt.DB
}

// Revoke marca el jti como cerrado.
func (r *SessionRepo) Revoke(ctx context.Context, tokenID, accountID string, expiresAt time.Time) error {
	v, err := json.Marshal(revokedSession{AccountID: accountID, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return update(ctx, r.db, func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put([]byte(tokenID), v)
	})
}

// IsRevoked informa si el jti fue cerrado.
func (r *SessionRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked := false
	err := view(ctx, r.db, func(tx *bolt.Tx) error {
		revoked = tx.Bucket(sessionsBucket).Get([]byte(tokenID)) != nil
		return nil
	})
	return revoked, err
}

// PurgeExpired borra los registros cuyo token ya expiró.
func (r *SessionRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := update(ctx, r.db, func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var s revokedSession
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("decode session: %w", err)
			}
			if s.ExpiresAt.Before(now) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		n = int64(len(stale))
		return nil
	})
	return n, err
}
