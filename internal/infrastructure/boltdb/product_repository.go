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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo guarda cada catálogo en un bucket anidado products/<ownerID>.
// La clave es la secuencia del bucket en big-endian, así el cursor recorre en orden de inserción.
type ProductRepo struct {
	db *bolt.DB
}

// Create persiste el producto bajo ownerID. La cuenta debe existir.
func (r *ProductRepo) Create(ctx context.Context, ownerID string, p *entity.Product) error {
	p.OwnerID = ownerID
	v, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	return update(ctx, r.db, func(tx *bolt.Tx) error {
		if ownerID == "" || tx.Bucket(accountsBucket).Get([]byte(ownerID)) == nil {
			return domain.ErrNotFound
		}
		b, err := tx.Bucket(productsBucket).CreateBucketIfNotExists([]byte(ownerID))
		if err != nil {
			return fmt.Errorf("bucket de %s: %w", ownerID, err)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("secuencia: %w", err)
		}
		return b.Put(itob(seq), v)
	})
}

// ListByOwner lista los productos de ownerID en orden de inserción.
func (r *ProductRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0)
	err := view(ctx, r.db, func(tx *bolt.Tx) error {
		return forEachProduct(tx, ownerID, func(p *entity.Product) bool {
			list = append(list, p)
			return true
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GetByOwnerAndID busca dentro del bucket de ownerID; un id de otra cuenta no se encuentra.
func (r *ProductRepo) GetByOwnerAndID(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	var found *entity.Product
	err := view(ctx, r.db, func(tx *bolt.Tx) error {
		return forEachProduct(tx, ownerID, func(p *entity.Product) bool {
			if p.ID == id {
				found = p
				return false
			}
			return true
		})
	})
	return found, err
}

// CountByOwner cuenta los productos de ownerID.
func (r *ProductRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	n := 0
	err := view(ctx, r.db, func(tx *bolt.Tx) error {
		b := tx.Bucket(productsBucket).Bucket([]byte(ownerID))
		if b == nil {
			return nil
		}
		n = b.Stats().KeyN
		return nil
	})
	return n, err
}

// forEachProduct recorre el catálogo de ownerID hasta que fn devuelva false.
func forEachProduct(tx *bolt.Tx, ownerID string, fn func(*entity.Product) bool) error {
	if ownerID == "" {
		return nil
	}
	b := tx.Bucket(productsBucket).Bucket([]byte(ownerID))
	if b == nil {
		return nil
	}
	c := b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var p entity.Product
		if err := json.Unmarshal(v, &p); err != nil {
			return fmt.Errorf("decode product: %w", err)
		}
		if !fn(&p) {
			return nil
		}
	}
	return nil
}
