// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated requests from the handlers, enforces the rules that need
// storage (the user exists, the tweet exists, the user owns it) and calls
// the stores to persist data. Rule violations are returned as
// *errs.HTTPError; unexpected storage errors are returned as is and
// translated by the global error handler.
package service

import (
	"context"

	"github.com/deppfellow/tweteroo/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore persists users. Implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// TweetStore persists tweets. Implemented by repository.TweetRepository.
//
// Lookups of a missing document return an error for which
// mongoerr.IsNotFound is true.
type TweetStore interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	ListNewestFirst(ctx context.Context) ([]model.Tweet, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error)
	Update(ctx context.Context, id primitive.ObjectID, username, text string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AvatarCache is a best effort username -> avatar cache.
// Implemented by *cache.AvatarCache, including a nil one.
type AvatarCache interface {
	Get(ctx context.Context, username string) (string, bool)
	Set(ctx context.Context, username, avatar string)
}
