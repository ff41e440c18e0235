package middleware

import (
	"strconv"
	"time"

	"github.com/deppfellow/tweteroo/internal/metrics"
	"github.com/labstack/echo/v4"
)

// unmatchedRoute labels requests no route matched, so random paths do
// not create new series.
const unmatchedRoute = "unmatched"

type MetricsMiddleware struct{}

func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{}
}

// Instrument records request count and latency per method, route
// template and status.
func (m *MetricsMiddleware) Instrument() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			method := c.Request().Method

			metrics.HTTPRequestsTotal.
				WithLabelValues(method, route, strconv.Itoa(responseStatus(c, err))).
				Inc()
			metrics.HTTPRequestDuration.
				WithLabelValues(method, route).
				Observe(time.Since(start).Seconds())

			return err
		}
	}
}
