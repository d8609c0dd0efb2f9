package repository

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/watchnow/watchnow/internal/model"
)

// UserRepo encapsulates all database operations on the usuarios
// collection.  Emails are normalized to lowercase before every lookup
// and insert so that registration and login agree on identity.
type UserRepo struct {
	coll *mongo.Collection
}

// NewUserRepo constructs a UserRepo over the given database.
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection("usuarios")}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ListAll returns every user ordered by id.  Callers serialize through
// model.User, whose password field is excluded from JSON.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []model.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID fetches a user by numeric id, ErrNotFound when missing.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail fetches a user by normalized email, ErrNotFound when
// missing.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.coll.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after a duplicate-email pre-check.  The
// caller must already have hashed the password; this layer never sees
// plaintext.  The pre-check is best effort: two racing registrations
// for the same email are last-write-wins, like every other write here.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = NormalizeEmail(u.Email)
	if _, err := r.FindByEmail(ctx, u.Email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	_, err := r.coll.InsertOne(ctx, u)
	return err
}

// NextID returns one more than the highest stored user id, starting at 1
// for an empty collection.
func (r *UserRepo) NextID(ctx context.Context) (int64, error) {
	var u model.User
	err := r.coll.FindOne(ctx, bson.D{},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 1, nil
		}
		return 0, err
	}
	return u.ID + 1, nil
}

// UpdateByID applies a partial $set update and returns the post-update
// document, or ErrNotFound when the id does not exist.  Incoming email
// values are normalized; the handler is responsible for hashing any
// password value before it reaches this method.
func (r *UserRepo) UpdateByID(ctx context.Context, id int64, fields map[string]any) (*model.User, error) {
	delete(fields, "_id")
	delete(fields, "id")
	if v, ok := fields["email"].(string); ok {
		fields["email"] = NormalizeEmail(v)
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	var u model.User
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdatePasswordByEmail overwrites the stored hash for the user with the
// given email.  ErrNotFound is returned when no such user exists.
func (r *UserRepo) UpdatePasswordByEmail(ctx context.Context, email, hash string) (*model.User, error) {
	var u model.User
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"email": NormalizeEmail(email)},
		bson.M{"$set": bson.M{"password": hash}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// DeleteByID removes a user and reports whether a document existed.
func (r *UserRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Count returns the number of users; used by the seed routine.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}
