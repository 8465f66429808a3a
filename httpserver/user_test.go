package httpserver_test

import (
	"movieapi/httpserver"
	"movieapi/user"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserRoutes_Me(t *testing.T) {
	t.Run("returns the account behind the token", func(t *testing.T) {
		// Arrange
		svc := new(MockUserService)
		server := httpserver.Default(testConfig())
		server.UserService = svc
		svc.On("GetUserByID", mock.Anything, "u-1").
			Return(user.User{ID: "u-1", Email: "john@mail.com", PasswordHash: "hashed"}, nil).Once()

		// Act
		rec := makeRequest(server, http.MethodGet, "/users/me", bearer(signTestToken(t)))

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{"id":"u-1","email":"john@mail.com"},"links":{"self":"/users/me"}}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("deleted account returns 404", func(t *testing.T) {
		svc := new(MockUserService)
		server := httpserver.Default(testConfig())
		server.UserService = svc
		svc.On("GetUserByID", mock.Anything, "u-1").Return(user.User{}, user.ErrUserNotFound).Once()

		rec := makeRequest(server, http.MethodGet, "/users/me", bearer(signTestToken(t)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("token signed with another secret returns 403", func(t *testing.T) {
		svc := new(MockUserService)
		cfg := testConfig()
		cfg.Auth.JWTSecret = "another-secret"
		server := httpserver.Default(cfg)
		server.UserService = svc

		rec := makeRequest(server, http.MethodGet, "/users/me", bearer(signTestToken(t)))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		server := httpserver.Default(testConfig())

		rec := makeRequest(server, http.MethodGet, "/users/me", map[string]string{"Authorization": "Basic abc"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
