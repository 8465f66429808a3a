package actor

import (
	"movieapi/errs"
	"movieapi/pagination"
	"strings"
)

var ErrActorNotFound = errs.Errorf(errs.ENOTFOUND, "Actor not found")

// Actor owns the ordered list of movie ids it played in.
type Actor struct {
	ID           string
	Name         string
	MoviesPlayed []string
}

// Filter restricts actors to those that played in MovieID, when set.
type Filter struct {
	MovieID string
}

type Query struct {
	MovieID string
	Window  pagination.Window
}

func ParseQuery(movieID, page, limit string) Query {
	return Query{
		MovieID: strings.TrimSpace(movieID),
		Window:  pagination.ParseWindow(page, limit),
	}
}

func (q Query) Filter() Filter {
	return Filter{MovieID: q.MovieID}
}

func (q Query) PageWindow() pagination.Window {
	return q.Window
}
