package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/tweteroo/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHealth(t *testing.T, checks ...HealthCheck) (int, healthResponse) {
	t.Helper()

	h := newHealthHandler(testutil.NewServer(), time.Second, checks)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
	require.NoError(t, h.CheckHealth(c))

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func pingOK(context.Context) error { return nil }

func pingFail(context.Context) error { return errors.New("dial tcp 10.0.0.9:27017: connection refused") }

func TestCheckHealth(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		status, body := runHealth(t,
			HealthCheck{Name: "database", Required: true, Ping: pingOK},
			HealthCheck{Name: "redis", Ping: pingOK},
		)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "healthy", body.Checks["database"].Status)
		assert.Equal(t, "test", body.Environment)
	})

	t.Run("optional failure is reported only", func(t *testing.T) {
		status, body := runHealth(t,
			HealthCheck{Name: "database", Required: true, Ping: pingOK},
			HealthCheck{Name: "redis", Ping: pingFail},
		)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "unhealthy", body.Checks["redis"].Status)
	})

	t.Run("required failure", func(t *testing.T) {
		status, body := runHealth(t,
			HealthCheck{Name: "database", Required: true, Ping: pingFail},
		)
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "unhealthy", body.Status)
	})

	t.Run("ping gets a deadline", func(t *testing.T) {
		status, _ := runHealth(t, HealthCheck{Name: "database", Required: true, Ping: func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			if !hasDeadline {
				return errors.New("no deadline")
			}
			return nil
		}})
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestNewHealthHandler_NoDependencies(t *testing.T) {
	h := NewHealthHandler(testutil.NewServer())
	assert.Empty(t, h.checks)
}
