package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-negocios/internal/application/auth"
	"github.com/jhoicas/inventario-negocios/internal/domain"
	"github.com/jhoicas/inventario-negocios/pkg/logger"
)

// SessionCookie nombre de la cookie de sesión emitida en el login.
const SessionCookie = "session"

// Locals keys de la sesión resuelta en Fiber.
const (
	LocalAccountID = "account_id"
	LocalUsername  = "username"
	LocalToken     = "session_token"
)

// SessionResolver resuelve un token a la sesión de una cuenta (implementado por auth.AuthUseCase).
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Session, error)
}

// AuthMiddleware exige una sesión válida: Bearer Token o cookie "session".
// Carga account_id y username en c.Locals; sin sesión responde 401 UNAUTHENTICATED.
func AuthMiddleware(resolver SessionResolver, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			return writeError(c, log, domain.ErrUnauthenticated)
		}
		s, err := resolver.Resolve(c.Context(), token)
		if err != nil {
			return writeError(c, log, err)
		}
		c.Locals(LocalAccountID, s.AccountID)
		c.Locals(LocalUsername, s.Username)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

// sessionToken toma el token del header Authorization y, si no hay, de la cookie.
func sessionToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	return c.Cookies(SessionCookie)
}

// GetAccountID devuelve el AccountID del contexto (después del middleware de auth).
func GetAccountID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalAccountID).(string)
	return s
}

// GetUsername devuelve el username de la sesión.
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetToken devuelve el token con el que se autenticó la petición.
func GetToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalToken).(string)
	return s
}
