package postgres

import (
	"context"
	"errors"
	"movieapi/movie"
	"movieapi/pagination"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID          string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string `gorm:"not null"`
	ReleaseYear int    `gorm:"not null"`
	Genre       string `gorm:"not null"`
	Description string `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Find(ctx context.Context, f movie.Filter, w pagination.Window) ([]movie.Movie, error) {
	var models []MovieModel
	err := r.scope(ctx, f).
		Order("id").
		Offset(max(w.Skip(), 0)).
		Limit(w.Limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies, nil
}

func (r *MovieRepository) Count(ctx context.Context, f movie.Filter) (int64, error) {
	var total int64
	err := r.scope(ctx, f).Model(&MovieModel{}).Count(&total).Error
	return total, err
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	if _, err := uuid.Parse(id); err != nil {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	var model MovieModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	model := toModelMovie(m)
	model.ID = ""
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

func (r *MovieRepository) UpdateByID(ctx context.Context, id string, m movie.Movie) (movie.Movie, error) {
	if _, err := uuid.Parse(id); err != nil {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	var models []MovieModel
	result := r.db.WithContext(ctx).
		Model(&models).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":        m.Title,
			"release_year": m.ReleaseYear,
			"genre":        m.Genre,
			"description":  m.Description,
		})
	if result.Error != nil {
		return movie.Movie{}, result.Error
	}
	if result.RowsAffected == 0 || len(models) == 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}
	return toDomainMovie(models[0]), nil
}

func (r *MovieRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MovieModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *MovieRepository) scope(ctx context.Context, f movie.Filter) *gorm.DB {
	q := r.db.WithContext(ctx)
	if f.Genre != "" {
		q = q.Where("genre ILIKE ?", "%"+escapeLike(f.Genre)+"%")
	}
	if f.Year != nil {
		q = q.Where("release_year = ?", *f.Year)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:          model.ID,
		Title:       model.Title,
		ReleaseYear: model.ReleaseYear,
		Genre:       model.Genre,
		Description: model.Description,
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	return MovieModel{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Genre:       m.Genre,
		Description: m.Description,
	}
}
