package mongodb

import (
	"context"
	"movieapi/movie"
	"movieapi/pagination"
	"movieapi/rating"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ratingDocument struct {
	ID     bson.ObjectID `bson:"_id,omitempty"`
	Rating float64       `bson:"rating"`
	Movie  bson.ObjectID `bson:"movie"`
}

// RatingRepository implements [rating.Repository].
type RatingRepository struct {
	coll *mongo.Collection
}

func NewRatingRepository(s *Store) *RatingRepository {
	return &RatingRepository{coll: s.db.Collection(RatingsCollection)}
}

func (r *RatingRepository) Find(ctx context.Context, f rating.Filter, w pagination.Window) ([]rating.Rating, error) {
	cur, err := r.coll.Find(ctx, ratingFilter(f), findOptions(w.Skip(), w.Limit))
	if err != nil {
		return nil, err
	}

	var docs []ratingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	ratings := make([]rating.Rating, len(docs))
	for i, doc := range docs {
		ratings[i] = toDomainRating(doc)
	}
	return ratings, nil
}

func (r *RatingRepository) Count(ctx context.Context, f rating.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, ratingFilter(f))
}

func (r *RatingRepository) Create(ctx context.Context, rt rating.Rating) (rating.Rating, error) {
	doc, err := toRatingDocument(rt)
	if err != nil {
		return rating.Rating{}, err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return rating.Rating{}, err
	}
	return toDomainRating(doc), nil
}

func ratingFilter(f rating.Filter) bson.M {
	filter := bson.M{}
	if f.MovieID != "" {
		if oid, err := bson.ObjectIDFromHex(f.MovieID); err == nil {
			filter["movie"] = oid
		} else {
			filter["movie"] = f.MovieID
		}
	}
	return filter
}

func toDomainRating(doc ratingDocument) rating.Rating {
	return rating.Rating{
		ID:      doc.ID.Hex(),
		Rating:  doc.Rating,
		MovieID: doc.Movie.Hex(),
	}
}

func toRatingDocument(rt rating.Rating) (ratingDocument, error) {
	oid, err := bson.ObjectIDFromHex(rt.MovieID)
	if err != nil {
		return ratingDocument{}, movie.ErrMovieNotFound
	}
	return ratingDocument{
		ID:     bson.NewObjectID(),
		Rating: rt.Rating,
		Movie:  oid,
	}, nil
}
