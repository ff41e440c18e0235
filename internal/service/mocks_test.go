package service

import (
	"context"

	"github.com/deppfellow/tweteroo/internal/model"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

type mockTweetStore struct {
	mock.Mock
}

func (m *mockTweetStore) Create(ctx context.Context, tweet *model.Tweet) error {
	return m.Called(ctx, tweet).Error(0)
}

func (m *mockTweetStore) ListNewestFirst(ctx context.Context) ([]model.Tweet, error) {
	args := m.Called(ctx)
	tweets, _ := args.Get(0).([]model.Tweet)
	return tweets, args.Error(1)
}

func (m *mockTweetStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	args := m.Called(ctx, id)
	tweet, _ := args.Get(0).(*model.Tweet)
	return tweet, args.Error(1)
}

func (m *mockTweetStore) Update(ctx context.Context, id primitive.ObjectID, username, text string) error {
	return m.Called(ctx, id, username, text).Error(0)
}

func (m *mockTweetStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type mockAvatarCache struct {
	mock.Mock
}

func (m *mockAvatarCache) Get(ctx context.Context, username string) (string, bool) {
	args := m.Called(ctx, username)
	return args.String(0), args.Bool(1)
}

func (m *mockAvatarCache) Set(ctx context.Context, username, avatar string) {
	m.Called(ctx, username, avatar)
}
