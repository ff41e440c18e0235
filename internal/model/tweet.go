package model

import (
	"github.com/deppfellow/tweteroo/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TweetsCollection is the collection Tweet documents live in.
const TweetsCollection = "tweets"

// Tweet references its author by username value, not by user id.
type Tweet struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Username string             `json:"username" bson:"username"`
	Tweet    string             `json:"tweet" bson:"tweet"`
}

// TweetView is a listing row: a tweet joined with its author's avatar.
type TweetView struct {
	ID       primitive.ObjectID `json:"_id"`
	Username string             `json:"username"`
	Avatar   string             `json:"avatar"`
	Tweet    string             `json:"tweet"`
}

// TweetRequest is the body of POST /tweets and PUT /tweets/:id.
type TweetRequest struct {
	Username string `json:"username" validate:"required"`
	Tweet    string `json:"tweet" validate:"required"`
}

func (r *TweetRequest) Validate() error {
	return validation.Struct(r)
}
