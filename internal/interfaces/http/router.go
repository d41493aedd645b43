package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/inventario-negocios/internal/application/analytics"
	"github.com/jhoicas/inventario-negocios/internal/application/auth"
	"github.com/jhoicas/inventario-negocios/internal/application/catalog"
	"github.com/jhoicas/inventario-negocios/internal/application/dto"
	"github.com/jhoicas/inventario-negocios/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Catalog      *catalog.Gateway
	DashboardUC  *appanalytics.DashboardUseCase
	Metrics      *Metrics // opcional
	Log          *logger.Logger
	UploadDir    string // servido en /uploads; vacío = sin estáticos
	SecureCookie bool
	HealthCheck  func(ctx context.Context) error // opcional: verifica la base de datos
}

// AppConfig parámetros del servidor Fiber.
type AppConfig struct {
	Name      string
	BodyLimit int
}

// NewApp crea la aplicación Fiber con el middleware común (recover, request id,
// access log, métricas) y registra las rutas.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	log := deps.Log
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code := CodeInternal
				switch fe.Code {
				case fiber.StatusNotFound:
					code = CodeNotFound
				case fiber.StatusRequestEntityTooLarge, fiber.StatusBadRequest:
					code = CodeInvalidBody
				}
				return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
			}
			return writeError(c, log, err)
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log.Named("http")))
	app.Use(deps.Metrics.Middleware())

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}
	if deps.UploadDir != "" {
		app.Static("/uploads", deps.UploadDir, fiber.Static{Browse: false})
	}

	api := app.Group("/api")
	requireSession := AuthMiddleware(deps.AuthUC, log)

	// Auth (público salvo logout y me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics, log, deps.SecureCookie)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", requireSession, authHandler.Logout)
	authGroup.Get("/me", requireSession, authHandler.Me)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	dashboard := api.Group("/dashboard", requireSession)
	dashboard.Get("/", dashboardHandler.Get)
	dashboard.Get("/report.pdf", dashboardHandler.Report)

	// Inventario (protegido)
	inventoryHandler := NewInventoryHandler(deps.Catalog, deps.DashboardUC, deps.Metrics, log)
	inventory := api.Group("/inventory", requireSession)
	inventory.Get("/", inventoryHandler.List)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Get("/:id", inventoryHandler.GetByID)
}
