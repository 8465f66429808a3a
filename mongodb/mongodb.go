package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	MoviesCollection        = "movies"
	ActorsCollection        = "actors"
	RatingsCollection       = "ratings"
	UsersCollection         = "users"
	LoginAttemptsCollection = "login_attempts"
)

type Options struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store owns the client connection. Open it once at start and Close it at shutdown.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the server, verifies it with a ping and ensures indexes.
func Connect(ctx context.Context, opts Options) (*Store, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(opts.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	s := &Store{client: client, db: client.Database(opts.Database)}
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique email index and the lookup indexes used by
// the list filters. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string]mongo.IndexModel{
		UsersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		RatingsCollection: {
			Keys: bson.D{{Key: "movie", Value: 1}},
		},
		ActorsCollection: {
			Keys: bson.D{{Key: "movies_played", Value: 1}},
		},
		MoviesCollection: {
			Keys: bson.D{{Key: "release_year", Value: 1}},
		},
	}

	for collection, model := range indexes {
		if _, err := s.db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	return nil
}

func findOptions(skip, limit int) *options.FindOptionsBuilder {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(max(skip, 0))).
		SetLimit(int64(limit))
}
