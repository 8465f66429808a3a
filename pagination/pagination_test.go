// nolint: funlen
package pagination_test

import (
	"context"
	"errors"
	"movieapi/pagination"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type filter struct {
	Genre string
}

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Find(ctx context.Context, f filter, w pagination.Window) ([]string, error) {
	args := m.Called(ctx, f, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSource) Count(ctx context.Context, f filter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		limit    string
		expected pagination.Window
	}{
		{name: "absent values use defaults", expected: pagination.Window{Page: 1, Limit: 10}},
		{name: "non-numeric values use defaults", page: "abc", limit: "ten", expected: pagination.Window{Page: 1, Limit: 10}},
		{name: "numeric values are kept", page: "3", limit: "25", expected: pagination.Window{Page: 3, Limit: 25}},
		{name: "limit is capped at 100", page: "1", limit: "500", expected: pagination.Window{Page: 1, Limit: 100}},
		{name: "limit of exactly 100 is kept", page: "2", limit: "100", expected: pagination.Window{Page: 2, Limit: 100}},
		{name: "negative page is not clamped", page: "-1", limit: "5", expected: pagination.Window{Page: -1, Limit: 5}},
		{name: "zero values use defaults", page: "0", limit: "0", expected: pagination.Window{Page: 1, Limit: 10}},
		{name: "negative limit uses default", page: "1", limit: "-4", expected: pagination.Window{Page: 1, Limit: 10}},
		{name: "page is capped so the skip cannot overflow", page: "9223372036854775807", limit: "100", expected: pagination.Window{Page: pagination.MaxPage, Limit: 100}},
		{name: "surrounding spaces are ignored", page: " 2 ", limit: " 7", expected: pagination.Window{Page: 2, Limit: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagination.ParseWindow(tt.page, tt.limit)

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWindowSkip(t *testing.T) {
	for page := 1; page <= 5; page++ {
		for _, limit := range []int{1, 10, 37, 100} {
			w := pagination.Window{Page: page, Limit: limit}
			assert.Equal(t, (page-1)*limit, w.Skip())
		}
	}
}

func TestWindow_SkipAtMaxPage(t *testing.T) {
	w := pagination.ParseWindow("9223372036854775807", "500")

	assert.Positive(t, w.Skip())
	assert.Equal(t, (pagination.MaxPage-1)*pagination.MaxLimit, w.Skip())
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total    int64
		limit    int
		expected int
	}{
		{total: 0, limit: 10, expected: 0},
		{total: 1, limit: 10, expected: 1},
		{total: 10, limit: 10, expected: 1},
		{total: 11, limit: 10, expected: 2},
		{total: 2, limit: 1, expected: 2},
		{total: 250, limit: 100, expected: 3},
		{total: 5, limit: 0, expected: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, pagination.PageCount(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestFetch(t *testing.T) {
	t.Run("should use the same filter for find and count", func(t *testing.T) {
		src := new(MockSource)
		f := filter{Genre: "drama"}
		w := pagination.Window{Page: 2, Limit: 2}
		src.On("Find", mock.Anything, f, w).Return([]string{"c", "d"}, nil).Once()
		src.On("Count", mock.Anything, f).Return(int64(5), nil).Once()

		page, err := pagination.Fetch[string, filter](context.Background(), src, f, w)

		require.NoError(t, err)
		assert.Equal(t, []string{"c", "d"}, page.Items)
		assert.Equal(t, int64(5), page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.Limit)
		assert.Equal(t, 3, page.Pages)
		src.AssertExpectations(t)
	})

	t.Run("should return an empty slice when nothing matches", func(t *testing.T) {
		src := new(MockSource)
		w := pagination.Window{Page: 1, Limit: 10}
		src.On("Find", mock.Anything, filter{}, w).Return(nil, nil).Once()
		src.On("Count", mock.Anything, filter{}).Return(int64(0), nil).Once()

		page, err := pagination.Fetch[string, filter](context.Background(), src, filter{}, w)

		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.Pages)
	})

	t.Run("should fail when find fails", func(t *testing.T) {
		src := new(MockSource)
		w := pagination.Window{Page: 1, Limit: 10}
		boom := errors.New("find failed")
		src.On("Find", mock.Anything, filter{}, w).Return(nil, boom).Once()
		src.On("Count", mock.Anything, filter{}).Return(int64(3), nil).Maybe()

		_, err := pagination.Fetch[string, filter](context.Background(), src, filter{}, w)

		assert.ErrorIs(t, err, boom)
	})

	t.Run("should fail when count fails", func(t *testing.T) {
		src := new(MockSource)
		w := pagination.Window{Page: 1, Limit: 10}
		boom := errors.New("count failed")
		src.On("Find", mock.Anything, filter{}, w).Return([]string{"a"}, nil).Maybe()
		src.On("Count", mock.Anything, filter{}).Return(int64(0), boom).Once()

		_, err := pagination.Fetch[string, filter](context.Background(), src, filter{}, w)

		assert.ErrorIs(t, err, boom)
	})
}

// blockingSource only answers Find once Count has started, so a sequential
// Fetch would dead-lock until the timeout.
type blockingSource struct {
	countStarted chan struct{}
}

func (s *blockingSource) Find(ctx context.Context, _ filter, _ pagination.Window) ([]string, error) {
	select {
	case <-s.countStarted:
		return []string{"x"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *blockingSource) Count(_ context.Context, _ filter) (int64, error) {
	close(s.countStarted)
	return 1, nil
}

func TestFetch_RunsReadsConcurrently(t *testing.T) {
	src := &blockingSource{countStarted: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	page, err := pagination.Fetch[string, filter](ctx, src, filter{}, pagination.Window{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, page.Items)
	assert.Equal(t, int64(1), page.Total)
}

type query struct {
	f filter
	w pagination.Window
}

func (q query) Filter() filter { return q.f }
func (q query) PageWindow() pagination.Window { return q.w }

func TestList(t *testing.T) {
	src := new(MockSource)
	q := query{f: filter{Genre: "action"}, w: pagination.Window{Page: 1, Limit: 1}}
	src.On("Find", mock.Anything, q.f, q.w).Return([]string{"a"}, nil).Once()
	src.On("Count", mock.Anything, q.f).Return(int64(2), nil).Once()

	page, err := pagination.List[string, filter](context.Background(), src, q)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Pages)
	src.AssertExpectations(t)
}

func TestMap(t *testing.T) {
	in := pagination.Page[string]{Items: []string{"a", "bb"}, Total: 12, Page: 2, Limit: 2, Pages: 6}

	out := pagination.Map(in, func(s string) int { return len(s) })

	assert.Equal(t, []int{1, 2}, out.Items)
	assert.Equal(t, in.Total, out.Total)
	assert.Equal(t, in.Page, out.Page)
	assert.Equal(t, in.Pages, out.Pages)
	assert.Equal(t, []string{"a", "bb"}, in.Items, "source page must not be mutated")
}
