package handler

import (
	"github.com/deppfellow/tweteroo/internal/server"
	"github.com/deppfellow/tweteroo/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Users   *UserHandler
	Tweets  *TweetHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Users:   NewUserHandler(s, services.Users),
		Tweets:  NewTweetHandler(s, services.Tweets),
	}
}
