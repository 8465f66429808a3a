package main

import (
	"context"
	"movieapi/actor"
	"movieapi/auth"
	"movieapi/mongodb"
	"movieapi/movie"
	"movieapi/pkg/config"
	"movieapi/postgres"
	"movieapi/rating"
	"movieapi/user"
	"strconv"

	"go.uber.org/zap"
)

// repositories is the store chosen by DB_DRIVER.
type repositories struct {
	movies   movie.Repository
	actors   actor.Repository
	ratings  rating.Repository
	users    user.Repository
	attempts auth.LoginAttemptRepository
	close    func(ctx context.Context) error
}

func openRepositories(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (*repositories, error) {
	if cfg.DB.Driver == config.DriverPostgres {
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
			Logger:   log,
		})
		if err != nil {
			return nil, err
		}
		return &repositories{
			movies:   postgres.NewMovieRepository(db),
			actors:   postgres.NewActorRepository(db),
			ratings:  postgres.NewRatingRepository(db),
			users:    postgres.NewUserRepository(db),
			attempts: postgres.NewLoginAttemptRepository(db),
			close: func(context.Context) error {
				return postgres.Close(db)
			},
		}, nil
	}

	store, err := mongodb.Connect(ctx, mongodb.Options{
		URI:      cfg.MongoDB.URI,
		Database: cfg.MongoDB.Database,
		Timeout:  cfg.MongoDB.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return &repositories{
		movies:   mongodb.NewMovieRepository(store).WithLogger(log),
		actors:   mongodb.NewActorRepository(store),
		ratings:  mongodb.NewRatingRepository(store),
		users:    mongodb.NewUserRepository(store),
		attempts: mongodb.NewLoginAttemptRepository(store),
		close:    store.Close,
	}, nil
}
