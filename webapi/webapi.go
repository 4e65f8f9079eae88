// Package webapi provides the HTTP surface of the brokerage engine.
// It is organized into sub-packages per audience:
// - auth: login and signup
// - customer: profile, accounts and passwords
// - trade: binary trades and the public trading settings
// - review: deposits, withdrawals and exchanges
// - admin: the back office, guarded by an API key
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/brokerage/pkg/app"
	"github.com/amirasaad/brokerage/pkg/config"
	adminweb "github.com/amirasaad/brokerage/webapi/admin"
	authweb "github.com/amirasaad/brokerage/webapi/auth"
	"github.com/amirasaad/brokerage/webapi/common"
	customerweb "github.com/amirasaad/brokerage/webapi/customer"
	reviewweb "github.com/amirasaad/brokerage/webapi/review"
	tradeweb "github.com/amirasaad/brokerage/webapi/trade"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		WithCredentials:      true,
		PersistAuthorization: true,
		OAuth2RedirectUrl:    "/auth/login",
	}))

	if cfg.RateLimit != nil && cfg.RateLimit.MaxRequests > 0 {
		fiberApp.Use(limiter.New(limiter.Config{
			Max:          cfg.RateLimit.MaxRequests,
			Expiration:   cfg.RateLimit.Window,
			KeyGenerator: clientIP,
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Brokerage API is running")
	})
	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if a.Deps.Gatherer != nil && (cfg.Metrics == nil || cfg.Metrics.Enabled) {
		path := "/metrics"
		if cfg.Metrics != nil && cfg.Metrics.Path != "" {
			path = cfg.Metrics.Path
		}
		fiberApp.Get(path, adaptor.HTTPHandler(promhttp.HandlerFor(a.Deps.Gatherer, promhttp.HandlerOpts{})))
	}

	jwtCfg := jwtConfig(cfg)
	authweb.Routes(fiberApp, a.AuthService, a.CustomerService)
	customerweb.Routes(fiberApp, a.CustomerService, a.AuthService, jwtCfg)
	tradeweb.Routes(fiberApp, a.TradeService, a.SettingService, a.AuthService, jwtCfg)
	reviewweb.Routes(fiberApp, a.ReviewService, a.CustomerService, a.AuthService, jwtCfg)
	adminweb.Routes(fiberApp, a)
	return fiberApp
}

func jwtConfig(cfg *config.App) *config.Jwt {
	if cfg.Auth == nil {
		return nil
	}
	return cfg.Auth.Jwt
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP.
func clientIP(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		if i := strings.Index(forwardedFor, ","); i != -1 {
			return strings.TrimSpace(forwardedFor[:i])
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
