// Package analytics deriva las métricas del dashboard a partir del catálogo de una cuenta.
// Funciones puras: sin estado, sin I/O.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-negocios/internal/domain/entity"
)

// Summary resumen numérico del inventario.
type Summary struct {
	ProductCount  int
	TotalUnits    int
	LowStockCount int
	TotalValue    decimal.Decimal
}

// TotalValue suma Price * Quantity de cada producto. Devuelve 0 para una lista vacía.
func TotalValue(products []*entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		if p == nil {
			continue
		}
		total = total.Add(p.StockValue())
	}
	return total
}

// LowStock filtra los productos con Quantity <= MinStock conservando el orden de entrada.
// Nunca devuelve nil.
func LowStock(products []*entity.Product) []*entity.Product {
	low := make([]*entity.Product, 0)
	for _, p := range products {
		if p != nil && p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low
}

// Summarize calcula el resumen en una sola pasada.
func Summarize(products []*entity.Product) Summary {
	s := Summary{TotalValue: decimal.Zero}
	for _, p := range products {
		if p == nil {
			continue
		}
		s.ProductCount++
		s.TotalUnits += p.Quantity
		s.TotalValue = s.TotalValue.Add(p.StockValue())
		if p.IsLowStock() {
			s.LowStockCount++
		}
	}
	return s
}
