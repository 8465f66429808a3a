package httpserver

import (
	"movieapi/actor"
	"movieapi/movie"
	"movieapi/rating"
)

type MovieRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=300"`
	ReleaseYear int    `json:"release_year" validate:"required,min=1800,max=2100"`
	Genre       string `json:"genre" validate:"required,genre,max=200"`
	Description string `json:"description" validate:"omitempty,max=5000"`
}

func (r MovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Title:       r.Title,
		ReleaseYear: r.ReleaseYear,
		Genre:       r.Genre,
		Description: r.Description,
	}
}

type RatingRequest struct {
	Rating *float64 `json:"rating" validate:"required,min=0,max=5"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

// Query parameters stay strings so that non-numeric values reach the
// pagination defaults instead of failing the bind.

type PageQuery struct {
	Page  string `query:"page" validate:"omitempty,posint,maxpage"`
	Limit string `query:"limit" validate:"omitempty,posint"`
}

type MovieListQuery struct {
	Genre string `query:"genre" validate:"omitempty,genre"`
	Year  string `query:"year" validate:"omitempty,year"`
	PageQuery
}

func (q MovieListQuery) ToQuery() movie.Query {
	return movie.ParseQuery(q.Genre, q.Year, q.Page, q.Limit)
}

type ActorListQuery struct {
	Movie string `query:"movie"`
	PageQuery
}

func (q ActorListQuery) ToQuery() actor.Query {
	return actor.ParseQuery(q.Movie, q.Page, q.Limit)
}

type RatingListQuery struct {
	PageQuery
}

func (q RatingListQuery) ToQuery() rating.Query {
	return rating.ParseQuery(q.Page, q.Limit)
}
