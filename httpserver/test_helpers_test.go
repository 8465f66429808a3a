//nolint:unused
package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"movieapi/actor"
	"movieapi/httpserver"
	"movieapi/movie"
	"movieapi/pagination"
	"movieapi/pkg/config"
	"movieapi/pkg/jwt"
	"movieapi/rating"
	"movieapi/user"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func testConfig() *config.Config {
	cfg := &config.Config{AllowOrigins: "*"}
	cfg.Auth.JWTSecret = testJWTSecret
	cfg.Auth.TokenTTL = time.Hour
	return cfg
}

func signTestToken(t testing.TB) string {
	t.Helper()
	token, err := jwt.NewJWTProvider(testJWTSecret, time.Hour).
		GenerateAccessToken(user.User{ID: "u-1", Email: "john@mail.com"})
	require.NoError(t, err)
	return token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func makeRequest(server *httpserver.Server, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	return makeJSONRequest(server, method, path, nil, headers)
}

func makeJSONRequest(server *httpserver.Server, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

type apiError struct {
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Errors  []string `json:"errors"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var resp apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func pageOf[T any](items []T, total int64, page, limit int) pagination.Page[T] {
	return pagination.Page[T]{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pagination.PageCount(total, limit),
	}
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) List(ctx context.Context, q movie.Query) (pagination.Page[movie.Movie], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(pagination.Page[movie.Movie]), args.Error(1)
}

func (m *MockMovieService) Get(ctx context.Context, id string) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) Create(ctx context.Context, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) Update(ctx context.Context, id string, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, id, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockActorService struct {
	mock.Mock
}

func (m *MockActorService) List(ctx context.Context, q actor.Query) (pagination.Page[actor.Actor], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(pagination.Page[actor.Actor]), args.Error(1)
}

func (m *MockActorService) Get(ctx context.Context, id string) (actor.Actor, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(actor.Actor), args.Error(1)
}

type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) List(ctx context.Context, q rating.Query) (pagination.Page[rating.Rating], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(pagination.Page[rating.Rating]), args.Error(1)
}

func (m *MockRatingService) ListByMovie(ctx context.Context, movieID string, q rating.Query) (pagination.Page[rating.Rating], error) {
	args := m.Called(ctx, movieID, q)
	return args.Get(0).(pagination.Page[rating.Rating]), args.Error(1)
}

func (m *MockRatingService) Create(ctx context.Context, r rating.Rating) (rating.Rating, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(rating.Rating), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (user.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, id string) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}
