// Package config loads the application configuration from the environment.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Apply defaults, then validate so the app fails fast on bad config.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env, if present,
	// before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

/*
	Two env sources feed one koanf instance:

	- A handful of conventional names read without prefix:
	    DATABASE_URL -> database.url
	    PORT         -> server.port
	    APP_ENV      -> primary.env

	- Everything else uses the TWETEROO_ prefix with "__" as the nesting
	  separator, e.g.
	    TWETEROO_OBSERVABILITY__LOGGING__LEVEL=debug -> observability.logging.level
	    TWETEROO_REDIS__ADDRESS=localhost:6379      -> redis.address
*/

// EnvPrefix is the prefix of every namespaced setting.
const EnvPrefix = "TWETEROO_"

// listKeys are decoded from comma-separated values.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":         true,
	"observability.health_checks.checks": true,
}

var aliases = map[string]string{
	"DATABASE_URL": "database.url",
	"PORT":         "server.port",
	"APP_ENV":      "primary.env",
}

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=0"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=0"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=0"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// BodyLimit caps request bodies, in echo's size notation (e.g. "1M").
	BodyLimit string `koanf:"body_limit" validate:"required"`
}

// DatabaseConfig holds the MongoDB connection settings.
type DatabaseConfig struct {
	URL            string `koanf:"url" validate:"required"`
	Name           string `koanf:"name" validate:"required"`
	ConnectTimeout int    `koanf:"connect_timeout" validate:"min=1"`
	MaxPoolSize    uint64 `koanf:"max_pool_size"`
}

// RedisConfig configures the optional avatar cache. An empty Address
// disables Redis entirely.
type RedisConfig struct {
	Address   string        `koanf:"address"`
	Password  string        `koanf:"password"`
	DB        int           `koanf:"db" validate:"min=0"`
	AvatarTTL time.Duration `koanf:"avatar_ttl" validate:"min=0"`

	// Timeout bounds dialing and each command. Cache calls are not retried.
	Timeout time.Duration `koanf:"timeout" validate:"min=1ms"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// DefaultDatabaseName is used when DATABASE_URL names no database.
const DefaultDatabaseName = "tweteroo"

func envKey(s string) string {
	if key, ok := aliases[s]; ok {
		return key
	}
	if !strings.HasPrefix(s, EnvPrefix) {
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// LoadConfig loads configuration from environment variables on top of
// the defaults, validates it and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// An empty key makes the provider skip the variable. Blank values are
	// treated as unset so they cannot wipe a default.
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		name := envKey(key)
		if listKeys[name] {
			return name, splitList(value)
		}
		return name, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Unmarshal only overwrites keys present in the environment, so
	// everything else keeps its default.
	mainConfig := defaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.Observability.ServiceName = "tweteroo"
	mainConfig.Observability.Environment = mainConfig.Primary.Env
	mainConfig.Observability.Logging.Level = mainConfig.Observability.GetLogLevel()

	if mainConfig.Database.Name == "" && mainConfig.Database.URL != "" {
		cs, err := connstring.ParseAndValidate(mainConfig.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		mainConfig.Database.Name = cs.Database
	}
	if mainConfig.Database.Name == "" {
		mainConfig.Database.Name = DefaultDatabaseName
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func defaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "5000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			ShutdownTimeout:    10,
			CORSAllowedOrigins: []string{"*"},
			BodyLimit:          "1M",
		},
		Database: DatabaseConfig{
			ConnectTimeout: 10,
		},
		Redis: RedisConfig{
			AvatarTTL: 5 * time.Minute,
			Timeout:   200 * time.Millisecond,
		},
		Observability: DefaultObservabilityConfig(),
	}
}
