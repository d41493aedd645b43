package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	appanalytics "github.com/jhoicas/inventario-negocios/internal/application/analytics"
	"github.com/jhoicas/inventario-negocios/internal/application/auth"
	"github.com/jhoicas/inventario-negocios/internal/application/catalog"
	"github.com/jhoicas/inventario-negocios/internal/domain/repository"
	"github.com/jhoicas/inventario-negocios/internal/infrastructure/boltdb"
	infrapdf "github.com/jhoicas/inventario-negocios/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-negocios/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-negocios/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventario-negocios/internal/interfaces/http"
	"github.com/jhoicas/inventario-negocios/pkg/config"
	"github.com/jhoicas/inventario-negocios/pkg/logger"
)

// sessionPurger borra los registros de sesiones revocadas ya expiradas.
type sessionPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// backend repositorios del driver elegido más su health check y cierre.
type backend struct {
	accounts repository.AccountRepository
	products repository.ProductRepository
	sessions interface {
		repository.SessionRepository
		sessionPurger
	}
	ping  func(ctx context.Context) error
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer store.close()

	images, err := storage.NewLocalImageStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de uploads")
	}

	authUC := auth.NewAuthUseCase(store.accounts, store.sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	gateway := catalog.NewGateway(store.products, images, log)
	dashboardUC := appanalytics.NewDashboardUseCase(gateway, store.accounts, infrapdf.NewMarotoPDFGenerator())

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:      cfg.App.Name,
		BodyLimit: cfg.Upload.BodyLimit(),
	}, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Catalog:      gateway,
		DashboardUC:  dashboardUC,
		Metrics:      httpRouter.NewMetrics(cfg.Metrics.Prefix),
		Log:          log,
		UploadDir:    cfg.Upload.Dir,
		SecureCookie: cfg.JWT.SecureCookie,
		HealthCheck:  store.ping,
	})

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el archivo)
	if _, err := os.Stat(cfg.App.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsPath,
			Path:     "docs",
			Title:    "Inventario Negocios API",
		}))
	}

	go purgeSessions(ctx, store.sessions, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openBackend abre PostgreSQL (aplicando migraciones) o el archivo bbolt según DB_DRIVER.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.DB.Driver == config.DriverBolt {
		s, err := boltdb.Open(cfg.DB.BoltPath, log.Named("bolt"))
		if err != nil {
			return nil, err
		}
		return &backend{
			accounts: s.Accounts(),
			products: s.Products(),
			sessions: s.Sessions(),
			ping:     s.Ping,
			close:    func() { _ = s.Close() },
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.NewMigrator(pool, log.Named("migrations")).Up(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &backend{
		accounts: postgres.NewAccountRepository(pool),
		products: postgres.NewProductRepository(pool),
		sessions: postgres.NewSessionRepository(pool),
		ping:     pool.Ping,
		close:    pool.Close,
	}, nil
}

// purgeSessions limpia cada hora las sesiones revocadas cuyo token ya expiró.
func purgeSessions(ctx context.Context, p sessionPurger, log *logger.Logger) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := p.PurgeExpired(ctx, now)
			if err != nil {
				log.Error().Err(err).Msg("purgar sesiones revocadas")
				continue
			}
			if n > 0 {
				log.Debug().Int64("purged", n).Msg("sesiones revocadas purgadas")
			}
		}
	}
}

