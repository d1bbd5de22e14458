// Package webapi provides the HTTP surface of the ledger: authentication,
// client registration and the account operations.
package webapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/MaeliPalharini/bankledger/pkg/config"
	"github.com/MaeliPalharini/bankledger/pkg/service/auth"
	"github.com/MaeliPalharini/bankledger/pkg/service/ledger"
)

// SetupApp initializes Fiber with rate limiting, panic recovery and the
// ledger routes.
func SetupApp(ledgerSvc *ledger.Service, authSvc *auth.Service, cfg *config.App) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	// Uses X-Forwarded-For when behind a proxy, falling back to X-Real-IP,
	// then to the direct peer address.
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Bank ledger API is running! 🚀")
	})

	AuthRoutes(app, authSvc)
	ClientRoutes(app, ledgerSvc, authSvc, cfg)
	AccountRoutes(app, ledgerSvc, authSvc, cfg)

	return app
}
