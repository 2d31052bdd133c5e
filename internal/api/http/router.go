package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lumenworks/agency-service/internal/api/http/handlers"
	"github.com/lumenworks/agency-service/internal/auth"
	"github.com/lumenworks/agency-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Contacts       *handlers.ContactsHandler
	Orders         *handlers.OrdersHandler
	Services       *handlers.ServicesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Static segments (stats/overview, user/me)
// register before the parameterized routes that would otherwise shadow them.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	authn := cfg.AuthMiddleware.Handle
	adminOnly := auth.RequireRole(domain.RoleAdmin)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/change", authn, auth.RequireAuth(), cfg.Users.ChangePassword)

	contact := app.Group("/contact")
	contact.Post("/", cfg.AuthMiddleware.Optional, cfg.Contacts.Submit)
	contact.Get("/", authn, adminOnly, cfg.Contacts.List)
	contact.Get("/stats/overview", authn, adminOnly, cfg.Contacts.Stats)
	contact.Get("/:id", authn, adminOnly, cfg.Contacts.Get)
	contact.Put("/:id", authn, adminOnly, cfg.Contacts.Update)
	contact.Delete("/:id", authn, adminOnly, cfg.Contacts.Delete)
	contact.Patch("/:id/status", authn, adminOnly, cfg.Contacts.UpdateStatus)
	contact.Patch("/:id/assign", authn, adminOnly, cfg.Contacts.Assign)
	contact.Patch("/:id/spam", authn, adminOnly, cfg.Contacts.SetSpamFlag)
	contact.Post("/:id/notes", authn, adminOnly, cfg.Contacts.AddNote)
	contact.Post("/:id/responses", authn, adminOnly, cfg.Contacts.AddResponse)

	orders := app.Group("/orders")
	orders.Post("/", cfg.AuthMiddleware.Optional, cfg.Orders.Place)
	orders.Get("/", authn, adminOnly, cfg.Orders.List)
	orders.Get("/stats/overview", authn, adminOnly, cfg.Orders.Stats)
	orders.Get("/user/me", authn, auth.RequireAuth(), cfg.Orders.ListMine)
	orders.Get("/:id", authn, auth.RequireAuth(), cfg.Orders.Get)
	orders.Post("/:id/messages", authn, auth.RequireAuth(), cfg.Orders.AddMessage)
	orders.Put("/:id", authn, adminOnly, cfg.Orders.Update)
	orders.Delete("/:id", authn, adminOnly, cfg.Orders.Delete)
	orders.Patch("/:id/status", authn, adminOnly, cfg.Orders.UpdateStatus)
	orders.Patch("/:id/assign", authn, adminOnly, cfg.Orders.Assign)

	services := app.Group("/services")
	services.Get("/", cfg.AuthMiddleware.Optional, cfg.Services.List)
	services.Post("/", authn, adminOnly, cfg.Services.Create)
	services.Get("/stats/overview", authn, adminOnly, cfg.Services.Stats)
	services.Get("/:slug", cfg.Services.GetBySlug)
	services.Put("/:id", authn, adminOnly, cfg.Services.Update)
	services.Delete("/:id", authn, adminOnly, cfg.Services.Delete)
	services.Patch("/:id/toggle-active", authn, adminOnly, cfg.Services.ToggleActive)
	services.Patch("/:id/toggle-featured", authn, adminOnly, cfg.Services.ToggleFeatured)
	services.Patch("/:id/order", authn, adminOnly, cfg.Services.SetDisplayOrder)
}
