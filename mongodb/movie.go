package mongodb

import (
	"context"
	"errors"
	"movieapi/movie"
	"movieapi/pagination"
	"movieapi/pkg/logger"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

type movieDocument struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	ReleaseYear int           `bson:"release_year"`
	Genre       string        `bson:"genre"`
	Description string        `bson:"description"`
}

// MovieRepository implements [movie.Repository].
type MovieRepository struct {
	coll    *mongo.Collection
	ratings *mongo.Collection
	log     *zap.SugaredLogger
}

func NewMovieRepository(s *Store) *MovieRepository {
	return &MovieRepository{
		coll:    s.db.Collection(MoviesCollection),
		ratings: s.db.Collection(RatingsCollection),
		log:     logger.NOOPLogger,
	}
}

func (r *MovieRepository) WithLogger(log *zap.SugaredLogger) *MovieRepository {
	r.log = log.With("repository", "mongodb.movies")
	return r
}

func (r *MovieRepository) Find(ctx context.Context, f movie.Filter, w pagination.Window) ([]movie.Movie, error) {
	cur, err := r.coll.Find(ctx, movieFilter(f), findOptions(w.Skip(), w.Limit))
	if err != nil {
		return nil, err
	}

	var docs []movieDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(docs))
	for i, doc := range docs {
		movies[i] = toDomainMovie(doc)
	}
	return movies, nil
}

func (r *MovieRepository) Count(ctx context.Context, f movie.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, movieFilter(f))
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	var doc movieDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(doc), nil
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	doc := toMovieDocument(m)
	doc.ID = bson.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(doc), nil
}

func (r *MovieRepository) UpdateByID(ctx context.Context, id string, m movie.Movie) (movie.Movie, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":        m.Title,
		"release_year": m.ReleaseYear,
		"genre":        m.Genre,
		"description":  m.Description,
	}}

	var doc movieDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(doc), nil
}

func (r *MovieRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	if res.DeletedCount == 0 {
		return false, nil
	}

	// ratings belong to exactly one movie and go with it. The movie is already
	// gone at this point, so a failed cascade only leaves unreachable ratings.
	if _, err := r.ratings.DeleteMany(ctx, bson.M{"movie": oid}); err != nil {
		r.log.Warnw("failed to delete ratings of deleted movie", "movie", id, "error", err)
	}
	return true, nil
}

func movieFilter(f movie.Filter) bson.M {
	filter := bson.M{}
	if f.Genre != "" {
		filter["genre"] = bson.Regex{Pattern: regexp.QuoteMeta(f.Genre), Options: "i"}
	}
	if f.Year != nil {
		filter["release_year"] = *f.Year
	}
	return filter
}

func toDomainMovie(doc movieDocument) movie.Movie {
	return movie.Movie{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		ReleaseYear: doc.ReleaseYear,
		Genre:       doc.Genre,
		Description: doc.Description,
	}
}

func toMovieDocument(m movie.Movie) movieDocument {
	doc := movieDocument{
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Genre:       m.Genre,
		Description: m.Description,
	}
	if oid, err := bson.ObjectIDFromHex(m.ID); err == nil {
		doc.ID = oid
	}
	return doc
}
