package model

import (
	"github.com/deppfellow/tweteroo/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsersCollection is the collection User documents live in.
const UsersCollection = "users"

// User is a profile. Username is a join key for tweets but is not unique.
type User struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Username string             `json:"username" bson:"username"`
	Avatar   string             `json:"avatar" bson:"avatar"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Avatar   string `json:"avatar" validate:"required"`
}

func (r *CreateUserRequest) Validate() error {
	return validation.Struct(r)
}
