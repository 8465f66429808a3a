package mongodb

import (
	"context"
	"errors"
	"movieapi/auth"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type loginAttemptDocument struct {
	Email       string     `bson:"_id"`
	FailedCount int        `bson:"failed_count"`
	JailedUntil *time.Time `bson:"jailed_until,omitempty"`
}

// LoginAttemptRepository implements [auth.LoginAttemptRepository].
type LoginAttemptRepository struct {
	coll *mongo.Collection
}

func NewLoginAttemptRepository(s *Store) *LoginAttemptRepository {
	return &LoginAttemptRepository{coll: s.db.Collection(LoginAttemptsCollection)}
}

func (r *LoginAttemptRepository) Get(ctx context.Context, email string) (auth.LoginAttempt, error) {
	var doc loginAttemptDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return auth.LoginAttempt{}, nil
		}
		return auth.LoginAttempt{}, err
	}

	var jailedUntil time.Time
	if doc.JailedUntil != nil {
		jailedUntil = doc.JailedUntil.UTC()
	}
	return auth.LoginAttempt{
		FailedCount: doc.FailedCount,
		JailedUntil: jailedUntil,
	}, nil
}

func (r *LoginAttemptRepository) Save(ctx context.Context, email string, attempt auth.LoginAttempt) error {
	doc := loginAttemptDocument{
		Email:       email,
		FailedCount: attempt.FailedCount,
	}
	if !attempt.JailedUntil.IsZero() {
		t := attempt.JailedUntil.UTC()
		doc.JailedUntil = &t
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": email}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *LoginAttemptRepository) Reset(ctx context.Context, email string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": email})
	return err
}
