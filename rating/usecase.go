package rating

import (
	"context"
	"movieapi/pagination"
	"movieapi/pkg/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, q Query) (pagination.Page[Rating], error)
	ListByMovie(ctx context.Context, movieID string, q Query) (pagination.Page[Rating], error)
	Create(ctx context.Context, r Rating) (Rating, error)
}

type Repository interface {
	pagination.Source[Rating, Filter]
	Create(ctx context.Context, r Rating) (Rating, error)
}

type Usecase struct {
	r   Repository
	log *zap.SugaredLogger
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{
		r:   r,
		log: logger.NOOPLogger,
	}
}

func (uc *Usecase) WithLogger(log *zap.SugaredLogger) *Usecase {
	uc.log = log.With("usecase", "rating")
	return uc
}

func (uc *Usecase) List(ctx context.Context, q Query) (pagination.Page[Rating], error) {
	page, err := pagination.List[Rating, Filter](ctx, uc.r, q)
	if err != nil {
		uc.log.Errorw("list ratings failed", "error", err, "movie", q.MovieID)
		return pagination.Page[Rating]{}, err
	}
	return page, nil
}

// ListByMovie lists ratings of a movie the caller has already resolved.
func (uc *Usecase) ListByMovie(ctx context.Context, movieID string, q Query) (pagination.Page[Rating], error) {
	return uc.List(ctx, q.ForMovie(movieID))
}

// Create stores a rating. The movie id must belong to an existing movie;
// callers resolve it before calling.
func (uc *Usecase) Create(ctx context.Context, r Rating) (Rating, error) {
	if err := r.Validate(); err != nil {
		return Rating{}, err
	}
	r.ID = ""
	return uc.r.Create(ctx, r)
}
