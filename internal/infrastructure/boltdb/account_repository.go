package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/jhoicas/inventario-negocios/internal/domain"
	"github.com/jhoicas/inventario-negocios/internal/domain/entity"
	"github.com/jhoicas/inventario-negocios/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo guarda cuentas en "accounts" (id -> JSON) con índice "usernames" (username -> id).
type AccountRepo struct {
	db *bolt.DB
}

// Create persiste la cuenta; el índice de username hace cumplir la unicidad en la misma tx.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	v, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}
	return update(ctx, r.db, func(tx *bolt.Tx) error {
		idx := tx.Bucket(usernamesBucket)
		if idx.Get([]byte(a.Username)) != nil {
			return domain.ErrDuplicateUsername
		}
		if err := tx.Bucket(accountsBucket).Put([]byte(a.ID), v); err != nil {
			return fmt.Errorf("put account: %w", err)
		}
		return idx.Put([]byte(a.Username), []byte(a.ID))
	})
}

// GetByID obtiene una cuenta por ID; (nil, nil) si no existe.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	var a *entity.Account
	err := view(ctx, r.db, func(tx *bolt.Tx) error {
		var err error
		a, err = findAccount(tx, id)
		return err
	})
	return a, err
}

// GetByUsername obtiene una cuenta por username; (nil, nil) si no existe.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var a *entity.Account
	err := view(ctx, r.db, func(tx *bolt.Tx) error {
		id := tx.Bucket(usernamesBucket).Get([]byte(username))
		if id == nil {
			return nil
		}
		var err error
		a, err = findAccount(tx, string(id))
		return err
	})
	return a, err
}

func findAccount(tx *bolt.Tx, id string) (*entity.Account, error) {
	v := tx.Bucket(accountsBucket).Get([]byte(id))
	if v == nil {
		return nil, nil
	}
	var a entity.Account
	if err := json.Unmarshal(v, &a); err != nil {
		return nil, fmt.Errorf("decode account %s: %w", id, err)
	}
	return &a, nil
}
