package actor

import (
	"context"
	"movieapi/pagination"
	"movieapi/pkg/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, q Query) (pagination.Page[Actor], error)
	Get(ctx context.Context, id string) (Actor, error)
}

type Repository interface {
	pagination.Source[Actor, Filter]
	GetByID(ctx context.Context, id string) (Actor, error)
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
	uc.log = log.With("usecase", "actor")
	return uc
}

func (uc *Usecase) List(ctx context.Context, q Query) (pagination.Page[Actor], error) {
	page, err := pagination.List[Actor, Filter](ctx, uc.r, q)
	if err != nil {
		uc.log.Errorw("list actors failed", "error", err, "movie", q.MovieID)
		return pagination.Page[Actor]{}, err
	}
	return page, nil
}

func (uc *Usecase) Get(ctx context.Context, id string) (Actor, error) {
	return uc.r.GetByID(ctx, id)
}
