package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrValidation        = errors.New("entrada inválida")
	ErrDuplicateUsername = errors.New("el nombre de usuario ya está registrado")
	ErrAuthentication    = errors.New("usuario o contraseña inválidos")
	ErrUnauthenticated   = errors.New("sesión requerida")
)

// ValidationError indica qué campo falló y por qué. errors.Is(err, ErrValidation) es true.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is hace que ValidationError coincida con ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
