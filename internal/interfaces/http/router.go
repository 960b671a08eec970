package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/pkg/jwt"
)

// HealthCheck verifica una dependencia (Postgres, Redis, ...).
type HealthCheck func(ctx context.Context) error

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AlertsUC    *appanalytics.AlertsUseCase
	KPIUC       *appanalytics.KPIUseCase
	AuditUC     *appanalytics.AuditUseCase
	DashboardUC *appanalytics.DashboardUseCase
	TaskUC      *usecase.TaskUseCase
	SettingsUC  *usecase.SettingsUseCase
	JWT         jwt.Options
	ServiceName string
	Checks      map[string]HealthCheck
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.ServiceName, deps.Checks))

	// Todas las rutas /api requieren Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWT))

	alertsHandler := NewAlertsHandler(deps.AlertsUC)
	api.Get("/alerts", alertsHandler.Get)

	kpiHandler := NewKPIHandler(deps.KPIUC)
	api.Get("/kpi", kpiHandler.Get)
	api.Get("/kpi/export", kpiHandler.Export)

	auditHandler := NewAuditHandler(deps.AuditUC)
	api.Get("/audit/transactions", auditHandler.ListTransactions)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/tasks", dashboardHandler.GetTaskStatistics)

	// Tasks: /overview antes de /:id
	tasks := api.Group("/tasks")
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/overview", taskHandler.Overview)
	tasks.Get("/:id", taskHandler.GetByID)
	tasks.Patch("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)

	// Settings: lectura para cualquier rol, escritura solo admin
	settings := api.Group("/settings", adminForWrites())
	NewSettingsHandler(deps.SettingsUC).Mount(settings)
}

// adminForWrites deja pasar GET/HEAD y exige rol admin para el resto de métodos.
func adminForWrites() fiber.Handler {
	requireAdmin := RequireRole(RoleAdmin)
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead:
			return c.Next()
		}
		return requireAdmin(c)
	}
}

// healthHandler GET /health. Con alguna verificación fallida responde 503.
func healthHandler(service string, checks map[string]HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status, code := "ok", fiber.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status, code = "degraded", fiber.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		return c.Status(code).JSON(fiber.Map{"status": status, "service": service, "checks": results})
	}
}
