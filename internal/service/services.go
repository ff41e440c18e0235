package service

import (
	"github.com/deppfellow/tweteroo/internal/cache"
	"github.com/deppfellow/tweteroo/internal/repository"
	"github.com/deppfellow/tweteroo/internal/server"
)

type Services struct {
	Users  *UserService
	Tweets *TweetService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	avatars := cache.NewAvatarCache(s.Redis, s.Config.Redis.AvatarTTL, s.Logger)

	return &Services{
		Users:  NewUserService(repos.Users),
		Tweets: NewTweetService(repos.Tweets, repos.Users, avatars, s.Logger),
	}, nil
}
