// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps every route to its handler.
package router

import (
	"net/http"

	"github.com/deppfellow/tweteroo/internal/handler"
	"github.com/deppfellow/tweteroo/internal/middleware"
	"github.com/deppfellow/tweteroo/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance. Middleware order matters: the
// request id must exist before the New Relic transaction and the request
// logger are built, and Recover sits innermost so panics still reach the
// request logger as 500s.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Instrument(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.BodyLimit(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerTweterooRoutes(router, h)

	return router
}

func registerTweterooRoutes(r *echo.Echo, h *handler.Handlers) {
	r.POST("/users", handler.Handle(h.Users.Handler, h.Users.CreateUser, http.StatusCreated))

	tweets := r.Group("/tweets")
	tweets.GET("", handler.Handle(h.Tweets.Handler, h.Tweets.ListTweets, http.StatusOK))
	tweets.POST("", handler.HandleWithPrecheck(h.Tweets.Handler, h.Tweets.CheckAuthor, h.Tweets.CreateTweet, http.StatusCreated))
	tweets.PUT("/:id", handler.HandleNoContent(h.Tweets.Handler, h.Tweets.UpdateTweet, http.StatusNoContent))
	tweets.DELETE("/:id", handler.HandleNoContent(h.Tweets.Handler, h.Tweets.DeleteTweet, http.StatusNoContent))
}
