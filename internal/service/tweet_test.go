package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/tweteroo/internal/errs"
	"github.com/deppfellow/tweteroo/internal/model"
	"github.com/deppfellow/tweteroo/internal/mongoerr"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	errUserMissing  = mongoerr.Wrap(mongo.ErrNoDocuments, model.UsersCollection, "find user by username")
	errTweetMissing = mongoerr.Wrap(mongo.ErrNoDocuments, model.TweetsCollection, "find tweet by id")
)

type tweetFixture struct {
	tweets  *mockTweetStore
	users   *mockUserStore
	avatars *mockAvatarCache
	service *TweetService
}

func newTweetFixture() *tweetFixture {
	f := &tweetFixture{
		tweets:  new(mockTweetStore),
		users:   new(mockUserStore),
		avatars: new(mockAvatarCache),
	}
	logger := zerolog.Nop()
	f.service = NewTweetService(f.tweets, f.users, f.avatars, &logger)
	return f
}

func assertHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, code, httpErr.Code)
}

func TestTweetService_Create(t *testing.T) {
	f := newTweetFixture()
	f.users.On("FindByUsername", mock.Anything, "ana").Return(&model.User{Username: "ana"}, nil)
	f.tweets.On("Create", mock.Anything, mock.Anything).Return(nil)

	tweet, err := f.service.Create(context.Background(), &model.TweetRequest{Username: "ana", Tweet: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "ana", tweet.Username)
	assert.Equal(t, "hi", tweet.Tweet)
	f.tweets.AssertExpectations(t)
}

func TestTweetService_CreateUnknownUser(t *testing.T) {
	f := newTweetFixture()
	f.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, errUserMissing)

	_, err := f.service.Create(context.Background(), &model.TweetRequest{Username: "ghost", Tweet: "hi"})

	assertHTTPError(t, err, http.StatusUnauthorized, errs.CodeInvalidUser)
	f.tweets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTweetService_CreateLookupFailure(t *testing.T) {
	f := newTweetFixture()
	boom := errors.New("boom")
	f.users.On("FindByUsername", mock.Anything, "ana").Return(nil, boom)

	_, err := f.service.Create(context.Background(), &model.TweetRequest{Username: "ana", Tweet: "hi"})
	assert.ErrorIs(t, err, boom)
}

func TestTweetService_List(t *testing.T) {
	f := newTweetFixture()
	newer, older, orphan := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	f.tweets.On("ListNewestFirst", mock.Anything).Return([]model.Tweet{
		{ID: newer, Username: "ana", Tweet: "second"},
		{ID: orphan, Username: "ghost", Tweet: "boo"},
		{ID: older, Username: "ana", Tweet: "first"},
	}, nil)
	f.avatars.On("Get", mock.Anything, "ana").Return("", false).Once()
	f.avatars.On("Get", mock.Anything, "ghost").Return("", false).Once()
	f.users.On("FindByUsername", mock.Anything, "ana").Return(&model.User{Username: "ana", Avatar: "a.png"}, nil).Once()
	f.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, errUserMissing).Once()
	f.avatars.On("Set", mock.Anything, "ana", "a.png").Once()

	views, err := f.service.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.TweetView{
		{ID: newer, Username: "ana", Avatar: "a.png", Tweet: "second"},
		{ID: orphan, Username: "ghost", Avatar: "", Tweet: "boo"},
		{ID: older, Username: "ana", Avatar: "a.png", Tweet: "first"},
	}, views)
	f.users.AssertExpectations(t)
	f.avatars.AssertExpectations(t)
}

func TestTweetService_ListCacheHit(t *testing.T) {
	f := newTweetFixture()
	f.tweets.On("ListNewestFirst", mock.Anything).Return([]model.Tweet{
		{ID: primitive.NewObjectID(), Username: "ana", Tweet: "hi"},
	}, nil)
	f.avatars.On("Get", mock.Anything, "ana").Return("cached.png", true)

	views, err := f.service.List(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "cached.png", views[0].Avatar)
	f.users.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestTweetService_ListWithoutCache(t *testing.T) {
	tweets, users := new(mockTweetStore), new(mockUserStore)
	logger := zerolog.Nop()
	svc := NewTweetService(tweets, users, nil, &logger)

	tweets.On("ListNewestFirst", mock.Anything).Return([]model.Tweet{
		{ID: primitive.NewObjectID(), Username: "ana", Tweet: "hi"},
	}, nil)
	users.On("FindByUsername", mock.Anything, "ana").Return(&model.User{Username: "ana", Avatar: "a.png"}, nil)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a.png", views[0].Avatar)
}

func TestTweetService_ListEmpty(t *testing.T) {
	f := newTweetFixture()
	f.tweets.On("ListNewestFirst", mock.Anything).Return([]model.Tweet{}, nil)

	views, err := f.service.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestTweetService_ListUserLookupFailure(t *testing.T) {
	f := newTweetFixture()
	boom := errors.New("boom")
	f.tweets.On("ListNewestFirst", mock.Anything).Return([]model.Tweet{
		{ID: primitive.NewObjectID(), Username: "ana", Tweet: "hi"},
	}, nil)
	f.avatars.On("Get", mock.Anything, "ana").Return("", false)
	f.users.On("FindByUsername", mock.Anything, "ana").Return(nil, boom)

	_, err := f.service.List(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestTweetService_Update(t *testing.T) {
	id := primitive.NewObjectID()
	req := &model.TweetRequest{Username: "ana", Tweet: "edited"}

	tests := []struct {
		name   string
		setup  func(f *tweetFixture)
		status int
		code   string
	}{
		{
			name: "success",
			setup: func(f *tweetFixture) {
				f.users.On("FindByUsername", mock.Anything, "ana").Return(&model.User{Username: "ana"}, nil)
				f.tweets.On("FindByID", mock.Anything, id).Return(&model.Tweet{ID: id, Username: "ana"}, nil)
				f.tweets.On("Update", mock.Anything, id, "ana", "edited").Return(nil)
			},
		},
		{
			name: "unknown user",
			setup: func(f *tweetFixture) {
				f.users.On("FindByUsername", mock.Anything, "ana").Return(nil, errUserMissing)
			},
			status: http.StatusUnauthorized,
			code:   errs.CodeInvalidUser,
		},
		{
			name: "unknown tweet",
			setup: func(f *tweetFixture) {
				f.users.On("FindByUsername", mock.Anything, "ana").Return(&model.User{Username: "ana"}, nil)
				f.tweets.On("FindByID", mock.Anything, id).Return(nil, errTweetMissing)
			},
			status: http.StatusNotFound,
			code:   errs.CodeTweetNotFound,
		},
		{
			name: "owned by someone else",
			setup: func(f *tweetFixture) {
				f.users.On("FindByUsername", mock.Anything, "ana").Return(&model.User{Username: "ana"}, nil)
				f.tweets.On("FindByID", mock.Anything, id).Return(&model.Tweet{ID: id, Username: "bob"}, nil)
			},
			status: http.StatusUnauthorized,
			code:   errs.CodeTweetOwnershipMismatch,
		},
		{
			name: "deleted between check and write",
			setup: func(f *tweetFixture) {
				f.users.On("FindByUsername", mock.Anything, "ana").Return(&model.User{Username: "ana"}, nil)
				f.tweets.On("FindByID", mock.Anything, id).Return(&model.Tweet{ID: id, Username: "ana"}, nil)
				f.tweets.On("Update", mock.Anything, id, "ana", "edited").Return(errTweetMissing)
			},
			status: http.StatusNotFound,
			code:   errs.CodeTweetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTweetFixture()
			tt.setup(f)

			err := f.service.Update(context.Background(), id, req)

			if tt.status == 0 {
				require.NoError(t, err)
				f.tweets.AssertExpectations(t)
				return
			}
			assertHTTPError(t, err, tt.status, tt.code)
		})
	}
}

func TestTweetService_UpdateOwnershipLeavesTweetUntouched(t *testing.T) {
	f := newTweetFixture()
	id := primitive.NewObjectID()
	f.users.On("FindByUsername", mock.Anything, "ana").Return(&model.User{Username: "ana"}, nil)
	f.tweets.On("FindByID", mock.Anything, id).Return(&model.Tweet{ID: id, Username: "bob"}, nil)

	_ = f.service.Update(context.Background(), id, &model.TweetRequest{Username: "ana", Tweet: "x"})

	f.tweets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTweetService_Delete(t *testing.T) {
	f := newTweetFixture()
	id, missing := primitive.NewObjectID(), primitive.NewObjectID()
	f.tweets.On("Delete", mock.Anything, id).Return(nil)
	f.tweets.On("Delete", mock.Anything, missing).Return(
		mongoerr.Wrap(mongo.ErrNoDocuments, model.TweetsCollection, "delete tweet"))

	require.NoError(t, f.service.Delete(context.Background(), id))
	assertHTTPError(t, f.service.Delete(context.Background(), missing), http.StatusNotFound, errs.CodeTweetNotFound)
}
