// Package webapi provides the HTTP API of the ATM backend.
// It is organized into sub-packages:
// - atm: balance and withdrawal endpoints
// - common: problem details and request binding
package webapi

import (
	"errors"
	"strings"
	"time"

	_ "github.com/amirasaad/atm/docs"
	"github.com/amirasaad/atm/pkg/app"
	"github.com/amirasaad/atm/pkg/middleware"
	atmweb "github.com/amirasaad/atm/webapi/atm"
	"github.com/amirasaad/atm/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Use(recover.New())
	fiberApp.Use(middleware.Trace())

	maxRequests, window := 100, time.Minute
	if cfg.RateLimit != nil {
		if cfg.RateLimit.MaxRequests > 0 {
			maxRequests = cfg.RateLimit.MaxRequests
		}
		if cfg.RateLimit.Window > 0 {
			window = cfg.RateLimit.Window
		}
	}
	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				first, _, _ := strings.Cut(forwardedFor, ",")
				return strings.TrimSpace(first)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))

	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))
	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	basePath := ""
	if cfg.Server != nil {
		basePath = strings.TrimSuffix(cfg.Server.BasePath, "/")
	}
	var protect []fiber.Handler
	if cfg.Auth != nil && cfg.Auth.JwtSecret != "" {
		protect = append(protect, middleware.Protected(cfg.Auth.JwtSecret))
	}
	atmweb.Routes(fiberApp.Group(basePath), a.AtmService, protect...)
	return fiberApp
}
