package mongodb

import (
	"context"
	"errors"
	"movieapi/actor"
	"movieapi/pagination"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type actorDocument struct {
	ID           bson.ObjectID   `bson:"_id,omitempty"`
	Name         string          `bson:"name"`
	MoviesPlayed []bson.ObjectID `bson:"movies_played"`
}

// ActorRepository implements [actor.Repository].
type ActorRepository struct {
	coll *mongo.Collection
}

func NewActorRepository(s *Store) *ActorRepository {
	return &ActorRepository{coll: s.db.Collection(ActorsCollection)}
}

func (r *ActorRepository) Find(ctx context.Context, f actor.Filter, w pagination.Window) ([]actor.Actor, error) {
	cur, err := r.coll.Find(ctx, actorFilter(f), findOptions(w.Skip(), w.Limit))
	if err != nil {
		return nil, err
	}

	var docs []actorDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	actors := make([]actor.Actor, len(docs))
	for i, doc := range docs {
		actors[i] = toDomainActor(doc)
	}
	return actors, nil
}

func (r *ActorRepository) Count(ctx context.Context, f actor.Filter) (int64, error) {
	return r.coll.CountDocuments(ctx, actorFilter(f))
}

func (r *ActorRepository) GetByID(ctx context.Context, id string) (actor.Actor, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return actor.Actor{}, actor.ErrActorNotFound
	}

	var doc actorDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return actor.Actor{}, actor.ErrActorNotFound
		}
		return actor.Actor{}, err
	}
	return toDomainActor(doc), nil
}

// actorFilter matches actors whose movie list contains the movie. An id that
// is not an ObjectID is kept as a string so it matches nothing.
func actorFilter(f actor.Filter) bson.M {
	filter := bson.M{}
	if f.MovieID != "" {
		if oid, err := bson.ObjectIDFromHex(f.MovieID); err == nil {
			filter["movies_played"] = oid
		} else {
			filter["movies_played"] = f.MovieID
		}
	}
	return filter
}

func toDomainActor(doc actorDocument) actor.Actor {
	movies := make([]string, len(doc.MoviesPlayed))
	for i, oid := range doc.MoviesPlayed {
		movies[i] = oid.Hex()
	}
	return actor.Actor{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		MoviesPlayed: movies,
	}
}

func toActorDocument(a actor.Actor) (actorDocument, error) {
	doc := actorDocument{
		ID:           bson.NewObjectID(),
		Name:         a.Name,
		MoviesPlayed: make([]bson.ObjectID, 0, len(a.MoviesPlayed)),
	}
	for _, id := range a.MoviesPlayed {
		oid, err := bson.ObjectIDFromHex(id)
		if err != nil {
			return actorDocument{}, err
		}
		doc.MoviesPlayed = append(doc.MoviesPlayed, oid)
	}
	return doc, nil
}
