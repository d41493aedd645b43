package catalog

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-negocios/internal/application/dto"
	"github.com/jhoicas/inventario-negocios/internal/domain"
	"github.com/jhoicas/inventario-negocios/internal/domain/entity"
)

// Límites de las columnas de products; ambos backends los aplican igual.
const (
	maxNameLen     = 100
	maxCategoryLen = 50
	maxCount       = math.MaxInt32
)

// productFields campos ya convertidos a sus tipos.
type productFields struct {
	name     string
	category string
	price    decimal.Decimal
	quantity int
	minStock int
}

// parseProductFields convierte y valida los campos crudos del alta.
// Solo min_stock tiene valor por defecto; cualquier otro campo ausente o mal formado es un error.
func parseProductFields(in dto.AddProductRequest) (productFields, error) {
	var f productFields

	f.name = strings.TrimSpace(in.Name)
	if f.name == "" {
		return f, domain.NewValidationError("name", "es requerido")
	}
	if utf8.RuneCountInString(f.name) > maxNameLen {
		return f, domain.NewValidationError("name", "máximo 100 caracteres")
	}
	f.category = strings.TrimSpace(in.Category)
	if utf8.RuneCountInString(f.category) > maxCategoryLen {
		return f, domain.NewValidationError("category", "máximo 50 caracteres")
	}

	rawPrice := strings.TrimSpace(in.Price)
	if rawPrice == "" {
		return f, domain.NewValidationError("price", "es requerido")
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return f, domain.NewValidationError("price", "debe ser un número")
	}
	if price.IsNegative() {
		return f, domain.NewValidationError("price", "no puede ser negativo")
	}
	f.price = price

	qty, err := parseCount("quantity", in.Quantity, nil)
	if err != nil {
		return f, err
	}
	f.quantity = qty

	def := entity.DefaultMinStock
	minStock, err := parseCount("min_stock", in.MinStock, &def)
	if err != nil {
		return f, err
	}
	f.minStock = minStock

	return f, nil
}

// parseCount convierte un entero no negativo. Si raw está vacío usa def, o falla si def es nil.
func parseCount(field, raw string, def *int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if def != nil {
			return *def, nil
		}
		return 0, domain.NewValidationError(field, "es requerido")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(field, "debe ser un número entero")
	}
	if n < 0 {
		return 0, domain.NewValidationError(field, "no puede ser negativo")
	}
	if n > maxCount {
		return 0, domain.NewValidationError(field, "fuera de rango")
	}
	return n, nil
}
