// Package testutil provides in-memory stores and a bare server for tests
// that exercise the HTTP stack without MongoDB.
package testutil

import (
	"github.com/deppfellow/tweteroo/internal/config"
	"github.com/deppfellow/tweteroo/internal/server"
	"github.com/rs/zerolog"
)

// NewServer returns a server with default configuration, a discarding
// logger and no database or redis.
func NewServer() *server.Server {
	logger := zerolog.Nop()

	observability := config.DefaultObservabilityConfig()
	observability.Environment = "test"

	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				Port:               "5000",
				CORSAllowedOrigins: []string{"*"},
				BodyLimit:          "1M",
			},
			Database:      config.DatabaseConfig{Name: config.DefaultDatabaseName},
			Observability: observability,
		},
		Logger: &logger,
	}
}
