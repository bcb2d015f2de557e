package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwt = &config.Jwt{Secret: "middleware-secret", Expiry: time.Hour}

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Use(JwtProtected(testJwt))
	app.Get("/", func(c *fiber.Ctx) error {
		token := c.Locals("user").(*jwt.Token)
		return c.SendString(token.Claims.(jwt.MapClaims)["user_id"].(string))
	})
	return app
}

func sign(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "abc",
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJwtProtected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: fiber.StatusUnauthorized},
		{name: "malformed", header: "Bearer not.a.jwt", want: fiber.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + sign(t, "other", time.Now().Add(time.Hour)), want: fiber.StatusUnauthorized},
		{name: "expired", header: "Bearer " + sign(t, testJwt.Secret, time.Now().Add(-time.Hour)), want: fiber.StatusUnauthorized},
		{name: "valid", header: "Bearer " + sign(t, testJwt.Secret, time.Now().Add(time.Hour)), want: fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := protectedApp().Test(req)
			require.NoError(t, err)
			defer resp.Body.Close() //nolint: errcheck
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestJwtError_Envelope(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("token is expired"))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get(fiber.HeaderContentType))
}
