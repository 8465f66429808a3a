package mongodb

import (
	"context"
	"movieapi/actor"
	"movieapi/movie"
	"movieapi/rating"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SeedStore implements [seed.Store]. Every Replace call clears its collection
// before inserting.
type SeedStore struct {
	store *Store
}

func NewSeedStore(s *Store) *SeedStore {
	return &SeedStore{store: s}
}

func (s *SeedStore) ReplaceMovies(ctx context.Context, movies []movie.Movie) ([]movie.Movie, error) {
	docs := make([]any, len(movies))
	inserted := make([]movie.Movie, len(movies))
	for i, m := range movies {
		doc := toMovieDocument(m)
		doc.ID = bson.NewObjectID()
		docs[i] = doc
		inserted[i] = toDomainMovie(doc)
	}

	if err := s.replace(ctx, MoviesCollection, docs); err != nil {
		return nil, err
	}
	return inserted, nil
}

func (s *SeedStore) ReplaceActors(ctx context.Context, actors []actor.Actor) error {
	docs := make([]any, len(actors))
	for i, a := range actors {
		doc, err := toActorDocument(a)
		if err != nil {
			return err
		}
		docs[i] = doc
	}
	return s.replace(ctx, ActorsCollection, docs)
}

func (s *SeedStore) ReplaceRatings(ctx context.Context, ratings []rating.Rating) error {
	docs := make([]any, len(ratings))
	for i, rt := range ratings {
		doc, err := toRatingDocument(rt)
		if err != nil {
			return err
		}
		docs[i] = doc
	}
	return s.replace(ctx, RatingsCollection, docs)
}

func (s *SeedStore) replace(ctx context.Context, collection string, docs []any) error {
	coll := s.store.db.Collection(collection)
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}
