package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/cache"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/report"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/telemetry"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/upstream"
	httpRouter "github.com/jhoicas/Backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/Backoffice-api/pkg/config"
	"github.com/jhoicas/Backoffice-api/pkg/jwt"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

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
		Str("version", cfg.App.Version).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.App.Name, cfg.App.Version, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar tracing")
	}
	metrics := telemetry.NewMetrics(cfg.Telemetry.MetricsNamespace)

	// Settings: PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("db", postgres.Describe(cfg.DB)).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrar esquema de settings")
	}
	txRunner := postgres.NewTxRunner(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	marketRepo := postgres.NewMarketRepository(pool)
	localizationRepo := postgres.NewLocalizationRepository(pool, txRunner)

	// Backend de inventario (REST), con caché Redis opcional delante
	client, err := upstream.NewClient(upstream.Config{
		BaseURL:  cfg.Upstream.BaseURL,
		Token:    cfg.Upstream.Token,
		Timeout:  cfg.Upstream.Timeout,
		PageSize: cfg.Upstream.PageSize,
		Log:      log.Component("upstream"),
	}, metrics)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente del backend")
	}
	var source repository.BackofficeSource = upstream.NewSource(client)
	taskRepo := upstream.NewTaskRepository(client)

	checks := map[string]httpRouter.HealthCheck{
		"postgres": pool.Ping,
	}
	if cfg.Redis.Enabled() {
		store := cache.NewRedisStore(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer store.Close()
		if err := store.Ping(ctx); err != nil {
			// sin Redis se sigue leyendo directo del backend
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible")
		}
		source = cache.NewSource(source, store, cfg.Redis.TTL, log.Component("cache").Zerolog(), metrics)
		checks["redis"] = store.Ping
	}

	alertsUC := appanalytics.NewAlertsUseCase(source, log.Component("alerts"))
	kpiUC := appanalytics.NewKPIUseCase(source, log.Component("kpi"),
		report.NewCSVRenderer(), report.NewXLSXRenderer(), report.NewPDFRenderer())
	auditUC := appanalytics.NewAuditUseCase(source, appanalytics.AuditConfig{
		SyntheticFiller: cfg.Audit.SyntheticFiller,
		SyntheticSeed:   cfg.Audit.SyntheticSeed,
	}, log.Component("audit"))
	dashboardUC := appanalytics.NewDashboardUseCase(source, log.Component("dashboard"))
	taskUC := usecase.NewTaskUseCase(taskRepo)
	settingsUC := usecase.NewSettingsUseCase(brandRepo, marketRepo, localizationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // exportaciones PDF/XLSX
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(httpRouter.MetricsMiddleware(metrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Backoffice API",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AlertsUC:    alertsUC,
		KPIUC:       kpiUC,
		AuditUC:     auditUC,
		DashboardUC: dashboardUC,
		TaskUC:      taskUC,
		SettingsUC:  settingsUC,
		JWT: jwt.Options{
			Secret: cfg.JWT.Secret,
			Issuer: cfg.JWT.Issuer,
			Leeway: 30 * time.Second,
		},
		ServiceName: cfg.App.Name,
		Checks:      checks,
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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del tracer")
	}

	log.Info().Msg("aplicación detenida")
}
