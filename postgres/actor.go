package postgres

import (
	"context"
	"errors"
	"movieapi/actor"
	"movieapi/pagination"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ActorModel represents the database model for actors.
type ActorModel struct {
	ID           string         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string         `gorm:"not null"`
	MoviesPlayed pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
}

func (ActorModel) TableName() string {
	return "actors"
}

// ActorRepository implements [actor.Repository].
type ActorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

func (r *ActorRepository) Find(ctx context.Context, f actor.Filter, w pagination.Window) ([]actor.Actor, error) {
	var models []ActorModel
	err := r.scope(ctx, f).
		Order("id").
		Offset(max(w.Skip(), 0)).
		Limit(w.Limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	actors := make([]actor.Actor, len(models))
	for i, model := range models {
		actors[i] = toDomainActor(model)
	}
	return actors, nil
}

func (r *ActorRepository) Count(ctx context.Context, f actor.Filter) (int64, error) {
	var total int64
	err := r.scope(ctx, f).Model(&ActorModel{}).Count(&total).Error
	return total, err
}

func (r *ActorRepository) GetByID(ctx context.Context, id string) (actor.Actor, error) {
	if _, err := uuid.Parse(id); err != nil {
		return actor.Actor{}, actor.ErrActorNotFound
	}

	var model ActorModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return actor.Actor{}, actor.ErrActorNotFound
		}
		return actor.Actor{}, err
	}
	return toDomainActor(model), nil
}

// scope narrows to actors who played in the movie. A movie id that is not a
// uuid matches nothing.
func (r *ActorRepository) scope(ctx context.Context, f actor.Filter) *gorm.DB {
	q := r.db.WithContext(ctx)
	if f.MovieID != "" {
		if _, err := uuid.Parse(f.MovieID); err != nil {
			return q.Where("1 = 0")
		}
		q = q.Where("? = ANY(movies_played)", f.MovieID)
	}
	return q
}

func toDomainActor(model ActorModel) actor.Actor {
	movies := []string(model.MoviesPlayed)
	if movies == nil {
		movies = []string{}
	}
	return actor.Actor{
		ID:           model.ID,
		Name:         model.Name,
		MoviesPlayed: movies,
	}
}

func toModelActor(a actor.Actor) ActorModel {
	movies := pq.StringArray(a.MoviesPlayed)
	if movies == nil {
		movies = pq.StringArray{}
	}
	return ActorModel{
		ID:           a.ID,
		Name:         a.Name,
		MoviesPlayed: movies,
	}
}
