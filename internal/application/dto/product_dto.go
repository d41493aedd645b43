package dto

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// AddProductRequest campos crudos del alta de producto (semántica de formulario).
// La conversión y validación de tipos la hace el gateway del catálogo.
type AddProductRequest struct {
	Name     string
	Category string
	Price    string
	Quantity string
	MinStock string // vacío = 5

	// Imagen opcional: nombre original y contenido.
	ImageName string
	Image     io.Reader
}

// AddProductJSON variante JSON del alta; acepta números o strings en los campos numéricos.
type AddProductJSON struct {
	Name     FlexString `json:"name"`
	Category FlexString `json:"category"`
	Price    FlexString `json:"price"`
	Quantity FlexString `json:"quantity"`
	MinStock FlexString `json:"min_stock"`
}

// ToRequest convierte el cuerpo JSON en AddProductRequest.
func (j AddProductJSON) ToRequest() AddProductRequest {
	return AddProductRequest{
		Name:     string(j.Name),
		Category: string(j.Category),
		Price:    string(j.Price),
		Quantity: string(j.Quantity),
		MinStock: string(j.MinStock),
	}
}

// FlexString recibe un string o un literal JSON (número, bool) tal cual.
// Objetos y arreglos se rechazan.
type FlexString string

// ErrNotScalar valor JSON compuesto donde se esperaba un escalar.
var ErrNotScalar = errors.New("se esperaba un string o un número")

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if len(b) > 0 && (b[0] == '{' || b[0] == '[') {
		return ErrNotScalar
	}
	*f = FlexString(b)
	return nil
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	MinStock  int             `json:"min_stock"`
	Image     string          `json:"image"`
	LowStock  bool            `json:"low_stock"`
	CreatedAt time.Time       `json:"created_at"`
}

// InventoryResponse vista de inventario de la cuenta.
type InventoryResponse struct {
	Currency string            `json:"currency"`
	Items    []ProductResponse `json:"items"`
}
