package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amirasaad/farmledger/pkg/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_LabelsByRouteTemplate(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/api/crops/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.ErrTeapot })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/crops/:id", "204")
	before := testutil.ToFloat64(counter)
	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/crops/"+id, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))

	teapot := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/boom", "418")
	before = testutil.ToFloat64(teapot)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, before+1, testutil.ToFloat64(teapot))
}
