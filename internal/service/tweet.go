package service

import (
	"context"

	"github.com/deppfellow/tweteroo/internal/errs"
	"github.com/deppfellow/tweteroo/internal/logger"
	"github.com/deppfellow/tweteroo/internal/metrics"
	"github.com/deppfellow/tweteroo/internal/model"
	"github.com/deppfellow/tweteroo/internal/mongoerr"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TweetService struct {
	tweets  TweetStore
	users   UserStore
	avatars AvatarCache
	log     *zerolog.Logger
}

// NewTweetService wires the stores. avatars may be nil.
func NewTweetService(tweets TweetStore, users UserStore, avatars AvatarCache, log *zerolog.Logger) *TweetService {
	return &TweetService{
		tweets:  tweets,
		users:   users,
		avatars: avatars,
		log:     log,
	}
}

func invalidUser() *errs.HTTPError {
	return errs.NewUnauthorizedError("User does not exist", true, errs.Code(errs.CodeInvalidUser))
}

func tweetNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Tweet not found", true, errs.Code(errs.CodeTweetNotFound))
}

// requireUser fails with INVALID_USER when no user has username.
func (s *TweetService) requireUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if mongoerr.IsNotFound(err) {
		return nil, invalidUser()
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser reports INVALID_USER when no user has username.
func (s *TweetService) CheckUser(ctx context.Context, username string) error {
	_, err := s.requireUser(ctx, username)
	return err
}

// Create posts a tweet for an existing user.
func (s *TweetService) Create(ctx context.Context, req *model.TweetRequest) (*model.Tweet, error) {
	if _, err := s.requireUser(ctx, req.Username); err != nil {
		return nil, err
	}

	tweet := &model.Tweet{
		Username: req.Username,
		Tweet:    req.Tweet,
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}

	return tweet, nil
}

// List returns every tweet newest first, each joined with its author's
// avatar. A tweet whose username matches no user keeps an empty avatar.
func (s *TweetService) List(ctx context.Context) ([]model.TweetView, error) {
	tweets, err := s.tweets.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}

	// one lookup per distinct username within this listing
	resolved := make(map[string]string)
	views := make([]model.TweetView, 0, len(tweets))

	for _, tweet := range tweets {
		avatar, ok := resolved[tweet.Username]
		if !ok {
			avatar, err = s.avatar(ctx, tweet)
			if err != nil {
				return nil, err
			}
			resolved[tweet.Username] = avatar
		}

		views = append(views, model.TweetView{
			ID:       tweet.ID,
			Username: tweet.Username,
			Avatar:   avatar,
			Tweet:    tweet.Tweet,
		})
	}

	return views, nil
}

func (s *TweetService) avatar(ctx context.Context, tweet model.Tweet) (string, error) {
	if s.avatars != nil {
		if avatar, ok := s.avatars.Get(ctx, tweet.Username); ok {
			return avatar, nil
		}
	}

	user, err := s.users.FindByUsername(ctx, tweet.Username)
	if mongoerr.IsNotFound(err) {
		metrics.DanglingTweets.Inc()
		logger.FromContext(ctx, s.log).Warn().
			Str("tweet_id", tweet.ID.Hex()).
			Str("username", tweet.Username).
			Msg("tweet author not found, listing without avatar")
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if s.avatars != nil {
		s.avatars.Set(ctx, user.Username, user.Avatar)
	}
	return user.Avatar, nil
}

// Update replaces username and text of tweet id.
//
// Checks run in order: the user exists, the tweet exists, the stored
// username equals the payload username. The checks and the write are
// separate operations with no transaction around them. A 404 therefore
// needs a known username; an unknown one is INVALID_USER whatever the id.
func (s *TweetService) Update(ctx context.Context, id primitive.ObjectID, req *model.TweetRequest) error {
	if _, err := s.requireUser(ctx, req.Username); err != nil {
		return err
	}

	tweet, err := s.tweets.FindByID(ctx, id)
	if mongoerr.IsNotFound(err) {
		return tweetNotFound()
	}
	if err != nil {
		return err
	}

	if tweet.Username != req.Username {
		return errs.NewUnauthorizedError("Tweet belongs to another user", true,
			errs.Code(errs.CodeTweetOwnershipMismatch))
	}

	err = s.tweets.Update(ctx, id, req.Username, req.Tweet)
	if mongoerr.IsNotFound(err) {
		return tweetNotFound()
	}
	return err
}

// Delete removes tweet id. No ownership check is made.
func (s *TweetService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.tweets.Delete(ctx, id)
	if mongoerr.IsNotFound(err) {
		return tweetNotFound()
	}
	return err
}
