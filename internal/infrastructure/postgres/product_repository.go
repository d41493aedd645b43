package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-negocios/internal/domain"
	"github.com/jhoicas/inventario-negocios/internal/domain/entity"
	"github.com/jhoicas/inventario-negocios/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, owner_id, name, category, price, quantity, min_stock, image, created_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Toda consulta filtra por owner_id.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto bajo ownerID.
func (r *ProductRepo) Create(ctx context.Context, ownerID string, p *entity.Product) error {
	p.OwnerID = ownerID
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OwnerID, p.Name, p.Category, p.Price, p.Quantity, p.MinStock, p.Image, p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidText(err) {
			return domain.ErrNotFound
		}
		if isDataOutOfRange(err) {
			return domain.ErrValidation
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// ListByOwner lista los productos de la cuenta en orden de inserción.
func (r *ProductRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		if isInvalidText(err) {
			return []*entity.Product{}, nil
		}
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		if isInvalidText(err) {
			return []*entity.Product{}, nil
		}
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// GetByOwnerAndID obtiene un producto solo si pertenece a ownerID.
func (r *ProductRepo) GetByOwnerAndID(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 AND id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// CountByOwner cuenta los productos de la cuenta.
func (r *ProductRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE owner_id = $1`, ownerID).Scan(&n)
	if err != nil {
		if isInvalidText(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.MinStock, &p.Image, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
