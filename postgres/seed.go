package postgres

import (
	"context"
	"movieapi/actor"
	"movieapi/movie"
	"movieapi/rating"

	"gorm.io/gorm"
)

const seedBatchSize = 500

// SeedStore implements [seed.Store]. Each Replace runs in one transaction that
// empties the table before inserting.
type SeedStore struct {
	db *gorm.DB
}

func NewSeedStore(db *gorm.DB) *SeedStore {
	return &SeedStore{db: db}
}

// ReplaceMovies also removes every rating through the movie_id cascade.
func (s *SeedStore) ReplaceMovies(ctx context.Context, movies []movie.Movie) ([]movie.Movie, error) {
	models := make([]MovieModel, len(movies))
	for i, m := range movies {
		models[i] = toModelMovie(m)
		models[i].ID = ""
	}

	if err := replace(ctx, s.db, &MovieModel{}, models); err != nil {
		return nil, err
	}

	inserted := make([]movie.Movie, len(models))
	for i, model := range models {
		inserted[i] = toDomainMovie(model)
	}
	return inserted, nil
}

func (s *SeedStore) ReplaceActors(ctx context.Context, actors []actor.Actor) error {
	models := make([]ActorModel, len(actors))
	for i, a := range actors {
		models[i] = toModelActor(a)
		models[i].ID = ""
	}
	return replace(ctx, s.db, &ActorModel{}, models)
}

func (s *SeedStore) ReplaceRatings(ctx context.Context, ratings []rating.Rating) error {
	models := make([]RatingModel, len(ratings))
	for i, rt := range ratings {
		models[i] = toModelRating(rt)
		models[i].ID = ""
	}
	return replace(ctx, s.db, &RatingModel{}, models)
}

func replace[M any](ctx context.Context, db *gorm.DB, table interface{}, models []M) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(&models, seedBatchSize).Error
	})
}
