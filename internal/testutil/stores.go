package testutil

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/deppfellow/tweteroo/internal/model"
	"github.com/deppfellow/tweteroo/internal/mongoerr"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserStore is an in-memory users collection. When Err is set every
// method fails with it.
type UserStore struct {
	mu    sync.Mutex
	users []model.User

	Err error
	// Lookups counts FindByUsername calls.
	Lookups int
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Lookups++
	if s.Err != nil {
		return nil, s.Err
	}
	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, mongoerr.Wrap(mongo.ErrNoDocuments, model.UsersCollection, "find user by username")
}

// TweetStore is an in-memory tweets collection. When Err is set every
// method fails with it.
type TweetStore struct {
	mu     sync.Mutex
	tweets map[primitive.ObjectID]model.Tweet

	Err error
}

func NewTweetStore() *TweetStore {
	return &TweetStore{tweets: make(map[primitive.ObjectID]model.Tweet)}
}

func (s *TweetStore) notFound(op string) error {
	return mongoerr.Wrap(mongo.ErrNoDocuments, model.TweetsCollection, op)
}

func (s *TweetStore) Create(_ context.Context, tweet *model.Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if tweet.ID.IsZero() {
		tweet.ID = primitive.NewObjectID()
	}
	s.tweets[tweet.ID] = *tweet
	return nil
}

// ListNewestFirst orders by ObjectID bytes descending, like a sort on _id.
func (s *TweetStore) ListNewestFirst(_ context.Context) ([]model.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	tweets := make([]model.Tweet, 0, len(s.tweets))
	for _, tweet := range s.tweets {
		tweets = append(tweets, tweet)
	}
	sort.Slice(tweets, func(i, j int) bool {
		return bytes.Compare(tweets[i].ID[:], tweets[j].ID[:]) > 0
	})
	return tweets, nil
}

func (s *TweetStore) FindByID(_ context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	tweet, ok := s.tweets[id]
	if !ok {
		return nil, s.notFound("find tweet by id")
	}
	return &tweet, nil
}

func (s *TweetStore) Update(_ context.Context, id primitive.ObjectID, username, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	tweet, ok := s.tweets[id]
	if !ok {
		return s.notFound("update tweet")
	}
	tweet.Username = username
	tweet.Tweet = text
	s.tweets[id] = tweet
	return nil
}

func (s *TweetStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.tweets[id]; !ok {
		return s.notFound("delete tweet")
	}
	delete(s.tweets, id)
	return nil
}
