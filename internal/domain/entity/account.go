package entity

import "time"

// DefaultCurrency moneda asignada cuando el registro no indica una.
const DefaultCurrency = "USD"

// Account representa una cuenta de negocio (tenant). Cada cuenta ve solo su propio catálogo.
type Account struct {
	ID           string
	Username     string // único
	PasswordHash string // bcrypt hash, nunca la contraseña en texto plano
	BusinessName string
	Currency     string
	CreatedAt    time.Time
}
