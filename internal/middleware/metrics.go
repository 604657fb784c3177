package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"messbook/internal/metrics"
)

// Metrics records a request counter and latency histogram per route.
func Metrics(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	// Route pattern, not the raw path, to keep cardinality bounded.
	path := c.Route().Path
	metrics.RequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
	metrics.RequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())

	return err
}
