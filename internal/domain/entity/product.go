package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto de un producto nuevo.
const (
	DefaultMinStock = 5
	DefaultImage    = "default.jpg"
)

// Product representa un producto del catálogo de una cuenta.
// OwnerID se fija al crear y no cambia.
type Product struct {
	ID        string
	OwnerID   string
	Name      string
	Category  string
	Price     decimal.Decimal // precio unitario, >= 0
	Quantity  int             // existencias, >= 0
	MinStock  int             // umbral de reposición, >= 0
	Image     string
	CreatedAt time.Time
}

// StockValue devuelve Price * Quantity.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// IsLowStock informa si las existencias están en o por debajo del umbral.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}
