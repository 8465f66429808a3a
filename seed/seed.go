// Package seed imports the movies dataset (movies_metadata.csv, credits.csv
// and ratings_small.csv) into a catalog store.
package seed

import (
	"context"
	"fmt"
	"io"
	"movieapi/actor"
	"movieapi/movie"
	"movieapi/pkg/logger"
	"movieapi/rating"

	"go.uber.org/zap"
)

const (
	DefaultMaxMovies  = 200
	DefaultMaxRatings = 10000
)

// Store replaces whole collections. ReplaceMovies returns the movies in input
// order with their store-assigned ids.
type Store interface {
	ReplaceMovies(ctx context.Context, movies []movie.Movie) ([]movie.Movie, error)
	ReplaceActors(ctx context.Context, actors []actor.Actor) error
	ReplaceRatings(ctx context.Context, ratings []rating.Rating) error
}

type Sources struct {
	Movies  io.Reader
	Credits io.Reader
	Ratings io.Reader
}

type Result struct {
	Movies  int
	Actors  int
	Ratings int
}

type Seeder struct {
	store      Store
	maxMovies  int
	maxRatings int
	log        *zap.SugaredLogger
}

func NewSeeder(store Store) *Seeder {
	return &Seeder{
		store:      store,
		maxMovies:  DefaultMaxMovies,
		maxRatings: DefaultMaxRatings,
		log:        logger.NOOPLogger,
	}
}

func (s *Seeder) WithLogger(log *zap.SugaredLogger) *Seeder {
	s.log = log.With("component", "seed")
	return s
}

// WithLimits caps how many movies and ratings are imported. Non-positive
// values keep the defaults.
func (s *Seeder) WithLimits(maxMovies, maxRatings int) *Seeder {
	if maxMovies > 0 {
		s.maxMovies = maxMovies
	}
	if maxRatings > 0 {
		s.maxRatings = maxRatings
	}
	return s
}

// Run replaces movies, then actors, then ratings. Actors and ratings that do
// not reference a seeded movie are dropped.
func (s *Seeder) Run(ctx context.Context, src Sources) (Result, error) {
	var res Result

	rows, err := ReadMovies(src.Movies, s.maxMovies)
	if err != nil {
		return res, fmt.Errorf("read movies: %w", err)
	}

	movies := make([]movie.Movie, len(rows))
	for i, row := range rows {
		movies[i] = row.Movie
	}
	inserted, err := s.store.ReplaceMovies(ctx, movies)
	if err != nil {
		return res, fmt.Errorf("replace movies: %w", err)
	}
	if len(inserted) != len(rows) {
		return res, fmt.Errorf("replace movies: stored %d of %d", len(inserted), len(rows))
	}
	res.Movies = len(inserted)
	s.log.Infow("seeded movies", "count", res.Movies)

	ids := make(map[int]string, len(rows))
	for i, row := range rows {
		ids[row.SourceID] = inserted[i].ID
	}

	if src.Credits != nil {
		actors, err := ReadActors(src.Credits, ids)
		if err != nil {
			return res, fmt.Errorf("read credits: %w", err)
		}
		if err := s.store.ReplaceActors(ctx, actors); err != nil {
			return res, fmt.Errorf("replace actors: %w", err)
		}
		res.Actors = len(actors)
		s.log.Infow("seeded actors", "count", res.Actors)
	}

	if src.Ratings != nil {
		ratings, err := ReadRatings(src.Ratings, ids, s.maxRatings)
		if err != nil {
			return res, fmt.Errorf("read ratings: %w", err)
		}
		if err := s.store.ReplaceRatings(ctx, ratings); err != nil {
			return res, fmt.Errorf("replace ratings: %w", err)
		}
		res.Ratings = len(ratings)
		s.log.Infow("seeded ratings", "count", res.Ratings)
	}

	return res, nil
}
