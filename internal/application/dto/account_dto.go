package dto

import "time"

// RegisterRequest entrada para registrar una cuenta de negocio.
type RegisterRequest struct {
	Username     string `json:"username" form:"username" validate:"required,max=50"`
	Password     string `json:"password" form:"password" validate:"required,max=72"`
	BusinessName string `json:"business_name" form:"business_name" validate:"max=100"`
	Currency     string `json:"currency" form:"currency" validate:"omitempty,len=3,alpha"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AccountResponse salida de una cuenta (sin credenciales).
type AccountResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	BusinessName string    `json:"business_name"`
	Currency     string    `json:"currency"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginResponse salida con el token de sesión.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}
