// Package webapi wires the HTTP surface of the farm ledger. It is organized
// into sub-packages per resource:
// - auth: OTP login, consent and the current user
// - profile: farmer profile
// - crop: crops, the yearly report and its export
// - expense: expenses against a crop
// - income: incomes and the category summary
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/farmledger/pkg/app"
	"github.com/amirasaad/farmledger/pkg/middleware"
	authweb "github.com/amirasaad/farmledger/webapi/auth"
	"github.com/amirasaad/farmledger/webapi/common"
	cropweb "github.com/amirasaad/farmledger/webapi/crop"
	expenseweb "github.com/amirasaad/farmledger/webapi/expense"
	incomeweb "github.com/amirasaad/farmledger/webapi/income"
	profileweb "github.com/amirasaad/farmledger/webapi/profile"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/amirasaad/farmledger/docs"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "farmledger",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	// Uses X-Forwarded-For header when behind a proxy
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        app.Config.RateLimit.MaxRequests,
		Expiration: app.Config.RateLimit.Window,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		KeyGenerator: clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Use(middleware.Metrics())

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authweb.Routes(fiberApp, app.AuthService, app.Config)
	profileweb.Routes(fiberApp, app.ProfileService, app.AuthService, app.Config)
	cropweb.Routes(fiberApp, app.CropService, app.ReportService, app.AuthService, app.Config)
	expenseweb.Routes(fiberApp, app.ExpenseService, app.AuthService, app.Config)
	incomeweb.Routes(fiberApp, app.IncomeService, app.AuthService, app.Config)

	fiberApp.Use(func(c *fiber.Ctx) error {
		return common.ProblemDetailsJSON(c, "Route not found", fiber.ErrNotFound)
	})
	return fiberApp
}

// clientKey takes the first address in X-Forwarded-For, then X-Real-IP,
// then the peer address.
func clientKey(c *fiber.Ctx) string {
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
}
