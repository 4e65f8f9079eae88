// Package middleware holds the fiber middleware guarding customer and admin routes.
package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/amirasaad/brokerage/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
)

// AdminKeyHeader carries the back office API key.
const AdminKeyHeader = "X-API-Key"

var errAdminDisabled = errors.New("admin api key is not configured")

// JwtProtected verifies the bearer token and stores it in c.Locals("user").
// Without a JWT config every request is refused.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	if cfg == nil || cfg.Secret == "" {
		return func(c *fiber.Ctx) error {
			return problem(c, fiber.StatusUnauthorized, "Unauthorized", "token authentication is not configured")
		}
	}
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) || strings.EqualFold(err.Error(), "missing or malformed JWT") {
		return problem(c, fiber.StatusBadRequest, "Bad Request", "Missing or malformed JWT")
	}
	return problem(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid or expired JWT")
}

// AdminProtected checks the static admin key. With no key configured every
// admin request is refused.
func AdminProtected(cfg *config.Admin) fiber.Handler {
	return keyauth.New(keyauth.Config{
		KeyLookup: "header:" + AdminKeyHeader,
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			if cfg == nil || cfg.APIKey == "" {
				return false, errAdminDisabled
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) != 1 {
				return false, keyauth.ErrMissingOrMalformedAPIKey
			}
			return true, nil
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, errAdminDisabled) {
				return problem(c, fiber.StatusForbidden, "Forbidden", err.Error())
			}
			return problem(c, fiber.StatusUnauthorized, "Unauthorized", "invalid or missing API key")
		},
	})
}

// problem is a local copy of the problem+json envelope; webapi/common
// imports this package's callers, not the other way round.
func problem(c *fiber.Ctx, status int, title, detail string) error {
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(fiber.Map{
		"type":     "about:blank",
		"title":    title,
		"status":   status,
		"detail":   detail,
		"instance": c.OriginalURL(),
	})
}
