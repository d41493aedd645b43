package repository

import (
	"context"

	"github.com/jhoicas/inventario-negocios/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// Todas las operaciones reciben ownerID como primer dato: no existe lectura ni
// escritura de productos sin el filtro por cuenta propietaria.
type ProductRepository interface {
	// Create persiste el producto bajo ownerID (p.OwnerID se fija a ownerID).
	// Devuelve domain.ErrNotFound si la cuenta propietaria no existe.
	Create(ctx context.Context, ownerID string, p *entity.Product) error
	// ListByOwner devuelve los productos de ownerID en orden de inserción.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error)
	// GetByOwnerAndID devuelve (nil, nil) si el producto no existe o pertenece a otra cuenta.
	GetByOwnerAndID(ctx context.Context, ownerID, id string) (*entity.Product, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
