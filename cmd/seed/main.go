package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"movieapi/mongodb"
	"movieapi/pkg/config"
	"movieapi/pkg/logger"
	"movieapi/postgres"
	"movieapi/seed"
	"os"
	"strconv"

	"go.uber.org/zap"
)

func main() {
	var (
		moviesPath  string
		creditsPath string
		ratingsPath string
		maxMovies   int
		maxRatings  int
	)

	flag.StringVar(&moviesPath, "movies", "dataset/movies_metadata.csv", "Path to movies_metadata.csv")
	flag.StringVar(&creditsPath, "credits", "dataset/credits.csv", "Path to credits.csv (empty to skip actors)")
	flag.StringVar(&ratingsPath, "ratings", "dataset/ratings_small.csv", "Path to ratings_small.csv (empty to skip ratings)")
	flag.IntVar(&maxMovies, "max-movies", seed.DefaultMaxMovies, "Number of movies to import")
	flag.IntVar(&maxRatings, "max-ratings", seed.DefaultMaxRatings, "Number of ratings to import")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config failed:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger failed:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), cfg, log, moviesPath, creditsPath, ratingsPath, maxMovies, maxRatings); err != nil {
		log.Fatalw("import failed", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger, moviesPath, creditsPath, ratingsPath string, maxMovies, maxRatings int) error {
	var src seed.Sources
	var files []*os.File
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	open := func(path string) (io.Reader, error) {
		if path == "" {
			return nil, nil
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
		return f, nil
	}

	var err error
	if src.Movies, err = open(moviesPath); err != nil {
		return err
	}
	if src.Movies == nil {
		return fmt.Errorf("movies csv is required")
	}
	if src.Credits, err = open(creditsPath); err != nil {
		return err
	}
	if src.Ratings, err = open(ratingsPath); err != nil {
		return err
	}

	store, closeStore, err := openSeedStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	res, err := seed.NewSeeder(store).
		WithLogger(log).
		WithLimits(maxMovies, maxRatings).
		Run(ctx, src)
	if err != nil {
		return err
	}

	log.Infow("import completed", "movies", res.Movies, "actors", res.Actors, "ratings", res.Ratings)
	return nil
}

func openSeedStore(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (seed.Store, func() error, error) {
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
			return nil, nil, err
		}
		return postgres.NewSeedStore(db), func() error { return postgres.Close(db) }, nil
	}

	store, err := mongodb.Connect(ctx, mongodb.Options{
		URI:      cfg.MongoDB.URI,
		Database: cfg.MongoDB.Database,
		Timeout:  cfg.MongoDB.Timeout,
	})
	if err != nil {
		return nil, nil, err
	}
	return mongodb.NewSeedStore(store), func() error { return store.Close(context.Background()) }, nil
}
