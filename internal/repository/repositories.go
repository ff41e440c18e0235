package repository

import (
	"github.com/deppfellow/tweteroo/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users  *UserRepository
	Tweets *TweetRepository
}

// NewRepositories builds every repository on the server's database handle.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:  NewUserRepository(s.DB.DB),
		Tweets: NewTweetRepository(s.DB.DB),
	}
}
