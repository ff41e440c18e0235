package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/tweteroo/internal/config"
	"github.com/deppfellow/tweteroo/internal/errs"
	"github.com/deppfellow/tweteroo/internal/model"
	"github.com/deppfellow/tweteroo/internal/mongoerr"
	"github.com/deppfellow/tweteroo/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		},
		Logger: &logger,
	}
}

func newTestEcho(s *server.Server) *echo.Echo {
	mw := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.Use(
		RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Metrics.Instrument(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
	)
	return e
}

func serve(e *echo.Echo, method, path string) (*httptest.ResponseRecorder, errs.HTTPError) {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	var body errs.HTTPError
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestGlobalErrorHandler(t *testing.T) {
	e := newTestEcho(newTestServer())

	e.GET("/validation", func(c echo.Context) error {
		return errs.ValidationError([]errs.FieldError{{Field: "username", Error: "is required"}})
	})
	e.GET("/missing", func(c echo.Context) error {
		return mongoerr.Wrap(mongo.ErrNoDocuments, model.TweetsCollection, "find tweet by id")
	})
	e.GET("/storage", func(c echo.Context) error {
		return mongoerr.Wrap(errors.New("server selection error: 10.0.0.3:27017"), model.TweetsCollection, "list tweets")
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})
	e.GET("/echo", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too big")
	})

	t.Run("http error keeps its shape", func(t *testing.T) {
		rec, body := serve(e, http.MethodGet, "/validation")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, errs.CodeValidationFailed, body.Code)
		assert.Equal(t, []errs.FieldError{{Field: "username", Error: "is required"}}, body.Errors)
	})

	t.Run("no documents becomes 404", func(t *testing.T) {
		rec, body := serve(e, http.MethodGet, "/missing")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "TWEET_NOT_FOUND", body.Code)
	})

	t.Run("storage failure hides driver detail", func(t *testing.T) {
		rec, body := serve(e, http.MethodGet, "/storage")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", body.Message)
		assert.NotContains(t, rec.Body.String(), "10.0.0.3")
	})

	t.Run("panic becomes 500", func(t *testing.T) {
		rec, body := serve(e, http.MethodGet, "/panic")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "boom")
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	})

	t.Run("echo error keeps status", func(t *testing.T) {
		rec, body := serve(e, http.MethodGet, "/echo")
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "too big", body.Message)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec, body := serve(e, http.MethodGet, "/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Route not found", body.Message)
	})
}

func TestRequestID(t *testing.T) {
	e := newTestEcho(newTestServer())
	e.GET("/id", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/id", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get(RequestIDHeader))
}

func TestEnhanceContext_StoresRequestLogger(t *testing.T) {
	s := newTestServer()
	logger := zerolog.New(nil).Level(zerolog.InfoLevel)
	s.Logger = &logger

	e := newTestEcho(s)
	e.GET("/ctx", func(c echo.Context) error {
		require.NotEqual(t, zerolog.Disabled, zerolog.Ctx(c.Request().Context()).GetLevel())
		require.NotEqual(t, zerolog.Disabled, GetLogger(c).GetLevel())
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ctx", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetLogger_WithoutEnhancer(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))
}
