package rating

import (
	"movieapi/errs"
	"movieapi/pagination"
	"strings"
)

const (
	MinValue = 0
	MaxValue = 5
)

var (
	ErrInvalidValue = errs.Errorf(errs.EINVALID, "Rating must be between %d and %d", MinValue, MaxValue)
	ErrMovieMissing = errs.Errorf(errs.EINVALID, "Rating must reference a movie")
)

// Rating is a score given to exactly one movie.
type Rating struct {
	ID      string
	Rating  float64
	MovieID string
}

func (r Rating) Validate() error {
	if r.Rating < MinValue || r.Rating > MaxValue {
		return ErrInvalidValue
	}
	if strings.TrimSpace(r.MovieID) == "" {
		return ErrMovieMissing
	}
	return nil
}

// Filter restricts ratings to one movie when MovieID is set.
type Filter struct {
	MovieID string
}

type Query struct {
	MovieID string
	Window  pagination.Window
}

func ParseQuery(page, limit string) Query {
	return Query{Window: pagination.ParseWindow(page, limit)}
}

// ForMovie narrows the query to ratings of one movie.
func (q Query) ForMovie(movieID string) Query {
	q.MovieID = movieID
	return q
}

func (q Query) Filter() Filter {
	return Filter{MovieID: q.MovieID}
}

func (q Query) PageWindow() pagination.Window {
	return q.Window
}
