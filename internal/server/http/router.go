package http

import (
	"github.com/dmitrijs2005/leaseportal/internal/server/http/handlers"
	"github.com/dmitrijs2005/leaseportal/internal/server/http/middleware"
	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything Register wires.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Files   *handlers.FileHandler
	Portal  *handlers.PortalHandler
	Health  *handlers.HealthHandler
	Session *middleware.SessionLoader
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers) {
	v1 := app.Group("/api").Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	optional := h.Session.Optional()
	required := h.Session.Required()

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Post("/logout", optional, h.Auth.Logout)

	v1.Get("/session", optional, h.Auth.Current)

	v1.Get("/files", required, h.Files.List)
	v1.Post("/files", required, h.Files.Upload)

	v1.Get("/topics", required, h.Portal.Topics)
	v1.Post("/topics/select", required, h.Portal.SelectTopic)
	v1.Post("/chat", required, h.Portal.Chat)
	v1.Get("/sheet", required, h.Portal.Sheet)
}
