package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-service/internal/api/http/handlers"
	"github.com/spec-kit/task-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tasks          *handlers.TasksHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/profile", cfg.AuthMiddleware.Handle, cfg.Users.Profile)

	tasks := app.Group("/tasks", cfg.AuthMiddleware.Handle)
	tasks.Get("/", cfg.Tasks.List)
	tasks.Post("/", cfg.Tasks.Create)
	tasks.Get("/search", cfg.Tasks.Search)
	tasks.Get("/status/:status", cfg.Tasks.ByStatus)
	tasks.Get("/date-range", cfg.Tasks.ByDateRange)
	tasks.Get("/stats", cfg.Tasks.Stats)
	tasks.Get("/activity", cfg.Tasks.Activity)
	tasks.Get("/:id", cfg.Tasks.Get)
	tasks.Put("/:id", cfg.Tasks.Update)
	tasks.Delete("/:id", cfg.Tasks.Delete)
}
