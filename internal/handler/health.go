package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/tweteroo/internal/middleware"
	"github.com/deppfellow/tweteroo/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthCheck pings one dependency. A failing required check makes the
// service unhealthy; an optional one is only reported.
type HealthCheck struct {
	Name     string
	Required bool
	Ping     func(ctx context.Context) error
}

type HealthHandler struct {
	Handler
	checks  []HealthCheck
	timeout time.Duration
}

type checkResult struct {
	Status       string `json:"status"`
	Required     bool   `json:"required"`
	ResponseTime string `json:"response_time"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// NewHealthHandler checks MongoDB (required) and Redis (optional), as far
// as observability.health_checks enables them.
func NewHealthHandler(s *server.Server) *HealthHandler {
	cfg := s.Config.Observability.HealthChecks

	var checks []HealthCheck
	if cfg.Has("database") && s.DB != nil {
		checks = append(checks, HealthCheck{Name: "database", Required: true, Ping: s.DB.Ping})
	}
	if cfg.Has("redis") && s.Redis != nil {
		checks = append(checks, HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() },
		})
	}

	return newHealthHandler(s, cfg.Timeout, checks)
}

func newHealthHandler(s *server.Server, timeout time.Duration, checks []HealthCheck) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
		timeout: timeout,
	}
}

// CheckHealth answers 200 when every required check passes, 503 otherwise.
// Error details are logged, not returned.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult, len(h.checks)),
	}

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := check.Ping(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		result := checkResult{
			Status:       "healthy",
			Required:     check.Required,
			ResponseTime: elapsed.String(),
		}

		if err != nil {
			result.Status = "unhealthy"
			if check.Required {
				response.Status = "unhealthy"
			}

			logger.Error().
				Err(err).
				Str("check", check.Name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordFailure(check.Name, elapsed, err)
		}

		response.Checks[check.Name] = result
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
