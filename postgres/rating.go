package postgres

import (
	"context"
	"errors"
	"movieapi/movie"
	"movieapi/pagination"
	"movieapi/rating"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingModel represents the database model for ratings. movie_id references
// movies(id) and cascades on delete.
type RatingModel struct {
	ID      string  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Rating  float64 `gorm:"not null"`
	MovieID string  `gorm:"type:uuid;not null;index"`
}

func (RatingModel) TableName() string {
	return "ratings"
}

// RatingRepository implements [rating.Repository].
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Find(ctx context.Context, f rating.Filter, w pagination.Window) ([]rating.Rating, error) {
	var models []RatingModel
	err := r.scope(ctx, f).
		Order("id").
		Offset(max(w.Skip(), 0)).
		Limit(w.Limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	ratings := make([]rating.Rating, len(models))
	for i, model := range models {
		ratings[i] = toDomainRating(model)
	}
	return ratings, nil
}

func (r *RatingRepository) Count(ctx context.Context, f rating.Filter) (int64, error) {
	var total int64
	err := r.scope(ctx, f).Model(&RatingModel{}).Count(&total).Error
	return total, err
}

// Create stores a rating. A movie id that is malformed or unknown yields
// movie.ErrMovieNotFound.
func (r *RatingRepository) Create(ctx context.Context, rt rating.Rating) (rating.Rating, error) {
	if _, err := uuid.Parse(rt.MovieID); err != nil {
		return rating.Rating{}, movie.ErrMovieNotFound
	}

	model := toModelRating(rt)
	model.ID = ""
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return rating.Rating{}, movie.ErrMovieNotFound
		}
		return rating.Rating{}, err
	}
	return toDomainRating(model), nil
}

func (r *RatingRepository) scope(ctx context.Context, f rating.Filter) *gorm.DB {
	q := r.db.WithContext(ctx)
	if f.MovieID != "" {
		if _, err := uuid.Parse(f.MovieID); err != nil {
			return q.Where("1 = 0")
		}
		q = q.Where("movie_id = ?", f.MovieID)
	}
	return q
}

func toDomainRating(model RatingModel) rating.Rating {
	return rating.Rating{
		ID:      model.ID,
		Rating:  model.Rating,
		MovieID: model.MovieID,
	}
}

func toModelRating(rt rating.Rating) RatingModel {
	return RatingModel{
		ID:      rt.ID,
		Rating:  rt.Rating,
		MovieID: rt.MovieID,
	}
}
