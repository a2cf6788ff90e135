package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-portal/internal/api/http/handlers"
	"github.com/spec-kit/clinic-portal/internal/guard"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Login     *handlers.LoginHandler
	Dashboard *handlers.DashboardHandler
	Guard     *guard.Guard
	Sessions  guard.Sessions
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	loginView := cfg.Guard.LoginView(cfg.Sessions)
	app.Get(guard.LoginPath, loginView, cfg.Login.Form)
	app.Get("/login", loginView, cfg.Login.Form)
	app.Post("/login", cfg.Login.Submit)
	app.Post("/logout", cfg.Login.Logout)

	protected := app.Group(guard.DashboardPath, cfg.Guard.Protected(cfg.Sessions))
	protected.Get("/", cfg.Dashboard.Overview)
	protected.Get("/:section", cfg.Dashboard.Section)
}
