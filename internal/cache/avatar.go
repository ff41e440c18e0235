// Package cache keeps user avatars in Redis so listing tweets does not
// need one users lookup per row.
//
// The cache is best effort: a nil *AvatarCache, a nil client and every
// Redis error behave like a miss.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/tweteroo/internal/logger"
	"github.com/deppfellow/tweteroo/internal/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const avatarKeyPrefix = "tweteroo:avatar:"

// AvatarKey returns the Redis key holding username's avatar.
func AvatarKey(username string) string {
	return avatarKeyPrefix + username
}

type AvatarCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zerolog.Logger
}

// NewAvatarCache returns nil when client is nil, which is a valid,
// always-missing cache.
func NewAvatarCache(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *AvatarCache {
	if client == nil {
		return nil
	}
	return &AvatarCache{client: client, ttl: ttl, log: logger}
}

// Get returns the cached avatar for username.
func (c *AvatarCache) Get(ctx context.Context, username string) (string, bool) {
	if c == nil {
		return "", false
	}

	avatar, err := c.client.Get(ctx, AvatarKey(username)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.AvatarCacheLookups.WithLabelValues("miss").Inc()
		return "", false
	case err != nil:
		metrics.AvatarCacheLookups.WithLabelValues("error").Inc()
		logger.FromContext(ctx, c.log).Warn().Err(err).Str("username", username).Msg("avatar cache read failed")
		return "", false
	}

	metrics.AvatarCacheLookups.WithLabelValues("hit").Inc()
	return avatar, true
}

// Set stores avatar for username with the configured TTL.
func (c *AvatarCache) Set(ctx context.Context, username, avatar string) {
	if c == nil {
		return
	}

	if err := c.client.Set(ctx, AvatarKey(username), avatar, c.ttl).Err(); err != nil {
		logger.FromContext(ctx, c.log).Warn().Err(err).Str("username", username).Msg("avatar cache write failed")
	}
}
