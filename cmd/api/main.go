package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/gestion-pro/internal/application/auth"
	"github.com/jhoicas/gestion-pro/internal/application/resolution"
	"github.com/jhoicas/gestion-pro/internal/application/usecase"
	"github.com/jhoicas/gestion-pro/internal/application/versioning"
	"github.com/jhoicas/gestion-pro/internal/infrastructure/audit"
	"github.com/jhoicas/gestion-pro/internal/infrastructure/cache"
	"github.com/jhoicas/gestion-pro/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/gestion-pro/internal/interfaces/http"
	"github.com/jhoicas/gestion-pro/pkg/config"
	"github.com/jhoicas/gestion-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	btRepo := postgres.NewBusinessTypeRepository(pool)
	versionRepo := postgres.NewVersionRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	overrideRepo := postgres.NewOverrideRepository(pool)
	legacyRepo := postgres.NewLegacyMappingRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	matrixCache := cache.NewMatrixCache(cfg.Cache.TTL())
	defer matrixCache.Stop()
	auditWriter := audit.NewWriter(log)

	registryUC := versioning.NewRegistryUseCase(
		txRunner, versionRepo, btRepo, tenantRepo, historyRepo, matrixCache, auditWriter,
	)
	resolverUC := resolution.NewResolverUseCase(
		tenantRepo, btRepo, versionRepo, legacyRepo, overrideRepo, matrixCache,
	)
	btUC := usecase.NewBusinessTypeUseCase(btRepo)
	tenantUC := usecase.NewTenantUseCase(tenantRepo, btRepo)
	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestión Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegistryUC:     registryUC,
		ResolverUC:     resolverUC,
		BusinessTypeUC: btUC,
		TenantUC:       tenantUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
