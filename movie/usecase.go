package movie

import (
	"context"
	"movieapi/pagination"
	"movieapi/pkg/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, q Query) (pagination.Page[Movie], error)
	Get(ctx context.Context, id string) (Movie, error)
	Create(ctx context.Context, m Movie) (Movie, error)
	Update(ctx context.Context, id string, m Movie) (Movie, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Repository is the movie store. GetByID and UpdateByID return
// ErrMovieNotFound for ids that do not resolve, malformed ids included.
type Repository interface {
	pagination.Source[Movie, Filter]
	GetByID(ctx context.Context, id string) (Movie, error)
	Create(ctx context.Context, m Movie) (Movie, error)
	UpdateByID(ctx context.Context, id string, m Movie) (Movie, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
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

// WithLogger replaces the use case logger.
func (uc *Usecase) WithLogger(log *zap.SugaredLogger) *Usecase {
	uc.log = log.With("usecase", "movie")
	return uc
}

func (uc *Usecase) List(ctx context.Context, q Query) (pagination.Page[Movie], error) {
	page, err := pagination.List[Movie, Filter](ctx, uc.r, q)
	if err != nil {
		uc.log.Errorw("list movies failed", "error", err, "genre", q.Genre, "page", q.Window.Page)
		return pagination.Page[Movie]{}, err
	}
	return page, nil
}

func (uc *Usecase) Get(ctx context.Context, id string) (Movie, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) Create(ctx context.Context, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	m.ID = ""
	return uc.r.Create(ctx, m)
}

func (uc *Usecase) Update(ctx context.Context, id string, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	m.ID = id
	return uc.r.UpdateByID(ctx, id, m)
}

func (uc *Usecase) Delete(ctx context.Context, id string) (bool, error) {
	return uc.r.DeleteByID(ctx, id)
}
