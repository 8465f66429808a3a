package pagination

import (
	"context"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps Skip within int for any accepted limit.
	MaxPage = math.MaxInt / MaxLimit
)

// Window is a page-number based slice of a result set.
type Window struct {
	Page  int
	Limit int
}

// ParseWindow converts raw query values into a Window. Absent, zero or
// non-numeric values fall back to the defaults, as does a negative limit.
// Limit is capped at MaxLimit and page at MaxPage. A negative page is kept as
// is; rejecting it is left to request validation.
func ParseWindow(rawPage, rawLimit string) Window {
	w := Window{Page: DefaultPage, Limit: DefaultLimit}
	if page, err := strconv.Atoi(strings.TrimSpace(rawPage)); err == nil && page != 0 {
		w.Page = min(page, MaxPage)
	}
	if limit, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && limit > 0 {
		w.Limit = limit
	}
	w.Limit = min(w.Limit, MaxLimit)
	return w
}

// Skip returns the number of records preceding the window.
func (w Window) Skip() int {
	return (w.Page - 1) * w.Limit
}

// PageCount returns ceil(total/limit), or 0 when limit is not positive.
func PageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}

// Page is one window of a filtered result set plus its summary.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
	Pages int
}

// Source is a store that can list and count records matching a filter.
type Source[T any, F any] interface {
	Find(ctx context.Context, filter F, w Window) ([]T, error)
	Count(ctx context.Context, filter F) (int64, error)
}

// Query is a typed list request: a store filter plus a window.
type Query[F any] interface {
	Filter() F
	PageWindow() Window
}

// Fetch runs the find and count reads concurrently with the same filter and
// joins them into a Page. The first failing read cancels the other.
func Fetch[T any, F any](ctx context.Context, src Source[T, F], filter F, w Window) (Page[T], error) {
	var (
		items []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = src.Find(gctx, filter, w)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = src.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return Page[T]{}, err
	}

	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items: items,
		Total: total,
		Page:  w.Page,
		Limit: w.Limit,
		Pages: PageCount(total, w.Limit),
	}, nil
}

// List is Fetch driven by a typed query.
func List[T any, F any](ctx context.Context, src Source[T, F], q Query[F]) (Page[T], error) {
	return Fetch(ctx, src, q.Filter(), q.PageWindow())
}

// Map projects every item of a page, keeping the summary.
func Map[T any, R any](p Page[T], project func(T) R) Page[R] {
	out := make([]R, len(p.Items))
	for i, item := range p.Items {
		out[i] = project(item)
	}
	return Page[R]{
		Items: out,
		Total: p.Total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: p.Pages,
	}
}
