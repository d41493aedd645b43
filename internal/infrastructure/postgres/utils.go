package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados para traducir errores a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
	codeStringTooLong       = "22001"
	codeNumericOutOfRange   = "22003"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

// isInvalidText verifica si el valor no se pudo convertir al tipo de la columna (22P02),
// p. ej. un id que no es UUID. Los repos lo tratan como "no existe".
func isInvalidText(err error) bool {
	return hasCode(err, codeInvalidText)
}

// isDataOutOfRange verifica si un valor excede el tipo de la columna (22001, 22003).
func isDataOutOfRange(err error) bool {
	return hasCode(err, codeStringTooLong) || hasCode(err, codeNumericOutOfRange)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
