package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/config"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

const (
	globalRateLimit = 120
	authRateLimit   = 10
)

type Deps struct {
	Config        *config.Config
	DB            *gorm.DB
	AuthService   *services.AuthService
	AuthHandler   *handlers.AuthHandler
	HealthHandler *handlers.HealthHandler
	// Storage backs the rate limiters; nil keeps counters in memory.
	Storage fiber.Storage
	Modules []apps.Module
}

func Setup(app *fiber.App, d Deps) {
	app.Use(rateLimit("global", globalRateLimit, d.Storage))

	// Public
	app.Get("/health", d.HealthHandler.Check)
	app.Get("/health/ready", d.HealthHandler.Ready)

	optional := middleware.SessionOptional(d.Config, d.AuthService)
	authLimit := rateLimit("auth", authRateLimit, d.Storage)

	app.Get("/signup", optional, d.AuthHandler.Form)
	app.Post("/signup", authLimit, optional, d.AuthHandler.Signup)
	app.Get("/login", optional, d.AuthHandler.Form)
	app.Post("/login", authLimit, optional, d.AuthHandler.Login)
	app.Get("/welcome", optional, d.AuthHandler.Welcome)

	// Everything registered below needs a live session.
	protected := app.Group("", middleware.SessionRequired(d.Config, d.AuthService))
	protected.Post("/logout", d.AuthHandler.Logout)
	protected.Get("/me", d.AuthHandler.Me)

	for _, m := range d.Modules {
		m.RegisterRoutes(protected, d.DB)
	}
}

// rateLimit counts per client IP. scope keeps limiters apart when they
// share one storage.
func rateLimit(scope string, limit int, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               limit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return scope + ":" + c.IP() },
		Storage:           storage,
	})
}
