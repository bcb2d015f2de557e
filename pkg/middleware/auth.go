// Package middleware provides fiber middleware shared by the route groups.
package middleware

import (
	"errors"

	"github.com/amirasaad/farmledger/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JwtProtected rejects requests without a valid HS256 bearer token and
// stores the parsed token in c.Locals("user").
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	message := "Invalid or expired token"
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		message = "Missing or malformed token"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
		"detail":  err.Error(),
	})
}
