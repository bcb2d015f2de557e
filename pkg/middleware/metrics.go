package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/amirasaad/farmledger/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics records the request count and latency of every request. Paths are
// labelled by route template so ids do not blow up cardinality.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			status = fe.Code
		case err != nil && status < fiber.StatusBadRequest:
			status = fiber.StatusInternalServerError
		}
		path := c.Route().Path
		if path == "/" && c.Path() != "/" {
			path = "unmatched"
		}
		method := c.Method()
		code := strconv.Itoa(status)

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
		return err
	}
}
