package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/watchnow/watchnow/internal/model"
)

// MovieRepo encapsulates all database operations on the movies
// collection.  It depends on a mongo collection handle which is
// configured at startup, allowing dependency injection in tests.
type MovieRepo struct {
	coll *mongo.Collection
}

// NewMovieRepo constructs a MovieRepo over the given database.
func NewMovieRepo(db *mongo.Database) *MovieRepo {
	return &MovieRepo{coll: db.Collection("movies")}
}

// ListAll returns every movie in the collection ordered by id.
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []model.Movie{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID fetches a single movie by its numeric id.  ErrNotFound is
// returned when no document matches.
func (r *MovieRepo) FindByID(ctx context.Context, id int64) (*model.Movie, error) {
	var m model.Movie
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a new movie.  The caller supplies the id; a duplicate
// id surfaces as the driver's duplicate key error.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	_, err := r.coll.InsertOne(ctx, m)
	return err
}

// UpdateByID applies a partial $set update and returns the post-update
// document, or ErrNotFound when the id does not exist.  The id itself
// cannot be rewritten through this path.
func (r *MovieRepo) UpdateByID(ctx context.Context, id int64, fields map[string]any) (*model.Movie, error) {
	delete(fields, "_id")
	delete(fields, "id")
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	var m model.Movie
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// DeleteByID removes a movie and reports whether a document existed.
func (r *MovieRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Count returns the number of movies; used by the seed routine.
func (r *MovieRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}
