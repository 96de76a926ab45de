package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Users  *handlers.UsersHandler
	Issues *handlers.IssuesHandler
	Auth   *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/logout", cfg.Users.Logout)
	authGroup.Post("/id", cfg.Users.IDByEmail)

	usersGroup := api.Group("/users")
	usersGroup.Get("/", cfg.Auth.RequireSession(), cfg.Users.List)
	usersGroup.Get("/:id/issues", cfg.Auth.RequireSession(), cfg.Issues.ListByOwner)
	usersGroup.Patch("/:id/promote", cfg.Auth.RequireAdmin(), cfg.Users.Promote)
	usersGroup.Delete("/:id", cfg.Auth.RequireAdmin(), cfg.Users.Delete)

	issuesGroup := api.Group("/issues")
	issuesGroup.Post("/", cfg.Auth.RequireAuthenticated(), cfg.Issues.Create)
	issuesGroup.Get("/", cfg.Auth.RequireAdmin(), cfg.Issues.ListAll)
	issuesGroup.Patch("/resolve/:id", cfg.Auth.RequireAdmin(), cfg.Issues.Resolve)
	issuesGroup.Patch("/:id", cfg.Auth.RequireSession(), cfg.Issues.Update)
	issuesGroup.Delete("/:id", cfg.Auth.RequireAdmin(), cfg.Issues.Delete)
}
