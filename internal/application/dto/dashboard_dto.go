package dto

import "github.com/shopspring/decimal"

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	BusinessName string            `json:"business_name"`
	Currency     string            `json:"currency"`
	Products     []ProductResponse `json:"products"`
	TotalValue   decimal.Decimal   `json:"total_value"` // Σ price * quantity, 2 decimales
	LowStock     []ProductResponse `json:"low_stock"`   // quantity <= min_stock, mismo orden que products
	Summary      SummaryResponse   `json:"summary"`
}

// SummaryResponse contadores del inventario.
type SummaryResponse struct {
	ProductCount  int `json:"product_count"`
	TotalUnits    int `json:"total_units"`
	LowStockCount int `json:"low_stock_count"`
}
