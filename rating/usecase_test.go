package rating_test

import (
	"context"
	"movieapi/pagination"
	"movieapi/rating"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Find(ctx context.Context, f rating.Filter, w pagination.Window) ([]rating.Rating, error) {
	args := m.Called(ctx, f, w)
	return args.Get(0).([]rating.Rating), args.Error(1)
}

func (m *MockRatingRepository) Count(ctx context.Context, f rating.Filter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingRepository) Create(ctx context.Context, r rating.Rating) (rating.Rating, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(rating.Rating), args.Error(1)
}

func TestListRatings(t *testing.T) {
	r := new(MockRatingRepository)
	uc := rating.NewUsecase(r)
	q := rating.ParseQuery("2", "3")
	ratings := []rating.Rating{{ID: "r4", Rating: 4.5, MovieID: "m1"}}
	r.On("Find", mock.Anything, rating.Filter{}, pagination.Window{Page: 2, Limit: 3}).Return(ratings, nil).Once()
	r.On("Count", mock.Anything, rating.Filter{}).Return(int64(4), nil).Once()

	page, err := uc.List(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, ratings, page.Items)
	assert.Equal(t, 2, page.Pages)
	r.AssertExpectations(t)
}

func TestListRatingsByMovie(t *testing.T) {
	r := new(MockRatingRepository)
	uc := rating.NewUsecase(r)
	q := rating.ParseQuery("", "")
	f := rating.Filter{MovieID: "m1"}
	r.On("Find", mock.Anything, f, q.Window).Return([]rating.Rating{}, nil).Once()
	r.On("Count", mock.Anything, f).Return(int64(0), nil).Once()

	page, err := uc.ListByMovie(context.Background(), "m1", q)

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, "", q.MovieID, "caller query must stay untouched")
	r.AssertExpectations(t)
}

func TestCreateRating(t *testing.T) {
	t.Run("should store a valid rating", func(t *testing.T) {
		r := new(MockRatingRepository)
		uc := rating.NewUsecase(r)
		in := rating.Rating{Rating: 3.5, MovieID: "m1"}
		r.On("Create", mock.Anything, in).Return(rating.Rating{ID: "r1", Rating: 3.5, MovieID: "m1"}, nil).Once()

		got, err := uc.Create(context.Background(), in)

		assert.NoError(t, err)
		assert.Equal(t, "r1", got.ID)
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		r := new(MockRatingRepository)
		uc := rating.NewUsecase(r)

		_, err := uc.Create(context.Background(), rating.Rating{Rating: 7, MovieID: "m1"})

		assert.Equal(t, rating.ErrInvalidValue, err)
		r.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should require a movie", func(t *testing.T) {
		r := new(MockRatingRepository)
		uc := rating.NewUsecase(r)

		_, err := uc.Create(context.Background(), rating.Rating{Rating: 2})

		assert.Equal(t, rating.ErrMovieMissing, err)
	})
}
