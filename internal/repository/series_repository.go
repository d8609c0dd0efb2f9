package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/watchnow/watchnow/internal/model"
)

// SeriesRepo encapsulates all database operations on the series
// collection.  The operation set mirrors MovieRepo; the two stay as
// separate types because their document shapes differ.
type SeriesRepo struct {
	coll *mongo.Collection
}

// NewSeriesRepo constructs a SeriesRepo over the given database.
func NewSeriesRepo(db *mongo.Database) *SeriesRepo {
	return &SeriesRepo{coll: db.Collection("series")}
}

// ListAll returns every series ordered by id.
func (r *SeriesRepo) ListAll(ctx context.Context) ([]model.Series, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []model.Series{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID fetches a single series by id, ErrNotFound when missing.
func (r *SeriesRepo) FindByID(ctx context.Context, id int64) (*model.Series, error) {
	var s model.Series
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a new series with its caller-supplied id.
func (r *SeriesRepo) Create(ctx context.Context, s *model.Series) error {
	_, err := r.coll.InsertOne(ctx, s)
	return err
}

// UpdateByID applies a partial $set update and returns the post-update
// document, or ErrNotFound when the id does not exist.
func (r *SeriesRepo) UpdateByID(ctx context.Context, id int64, fields map[string]any) (*model.Series, error) {
	delete(fields, "_id")
	delete(fields, "id")
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	var s model.Series
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// DeleteByID removes a series and reports whether a document existed.
func (r *SeriesRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Count returns the number of series; used by the seed routine.
func (r *SeriesRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}
