package repository

import (
	"context"

	"github.com/deppfellow/tweteroo/internal/model"
	"github.com/deppfellow/tweteroo/internal/mongoerr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TweetRepository struct {
	collection *mongo.Collection
}

func NewTweetRepository(db *mongo.Database) *TweetRepository {
	return &TweetRepository{collection: db.Collection(model.TweetsCollection)}
}

// Create inserts tweet, assigning a new ObjectID when it has none.
func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	if tweet.ID.IsZero() {
		tweet.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, tweet); err != nil {
		return mongoerr.Wrap(err, model.TweetsCollection, "insert tweet")
	}
	return nil
}

// ListNewestFirst returns every tweet ordered by _id descending. ObjectIDs
// start with their creation time, so this is newest first.
func (r *TweetRepository) ListNewestFirst(ctx context.Context) ([]model.Tweet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, mongoerr.Wrap(err, model.TweetsCollection, "list tweets")
	}

	tweets := make([]model.Tweet, 0)
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, mongoerr.Wrap(err, model.TweetsCollection, "decode tweets")
	}
	return tweets, nil
}

func (r *TweetRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	var tweet model.Tweet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tweet)
	if err != nil {
		return nil, mongoerr.Wrap(err, model.TweetsCollection, "find tweet by id")
	}
	return &tweet, nil
}

// Update overwrites username and tweet of the document with id.
func (r *TweetRepository) Update(ctx context.Context, id primitive.ObjectID, username, text string) error {
	update := bson.M{"$set": bson.M{"username": username, "tweet": text}}

	result, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return mongoerr.Wrap(err, model.TweetsCollection, "update tweet")
	}
	if result.MatchedCount == 0 {
		return mongoerr.Wrap(mongo.ErrNoDocuments, model.TweetsCollection, "update tweet")
	}
	return nil
}

// Delete removes the document with id. Nothing deleted is a not found error.
func (r *TweetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mongoerr.Wrap(err, model.TweetsCollection, "delete tweet")
	}
	if result.DeletedCount == 0 {
		return mongoerr.Wrap(mongo.ErrNoDocuments, model.TweetsCollection, "delete tweet")
	}
	return nil
}
