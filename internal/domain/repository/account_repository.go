package repository

import (
	"context"

	"github.com/jhoicas/inventario-negocios/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Los Get devuelven (nil, nil) cuando no existe el registro.
type AccountRepository interface {
	// Create devuelve domain.ErrDuplicateUsername si el username ya existe.
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)
}
