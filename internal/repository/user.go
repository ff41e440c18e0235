package repository

import (
	"context"

	"github.com/deppfellow/tweteroo/internal/model"
	"github.com/deppfellow/tweteroo/internal/mongoerr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(model.UsersCollection)}
}

// Create inserts user, assigning a new ObjectID when it has none.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return mongoerr.Wrap(err, model.UsersCollection, "insert user")
	}
	return nil
}

// FindByUsername returns the first user with username. Usernames are not
// unique, so which duplicate is returned is up to the server.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return nil, mongoerr.Wrap(err, model.UsersCollection, "find user by username")
	}
	return &user, nil
}
