package user_test

import (
	"context"
	"movieapi/user"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

func TestGetUserByID(t *testing.T) {
	r := new(MockUserRepository)
	uc := user.NewUsecase(r)

	t.Run("should return the stored user", func(t *testing.T) {
		u := user.User{ID: "u1", Email: "john@mail.com"}
		r.On("GetByID", mock.Anything, "u1").Return(u, nil).Once()

		got, err := uc.GetUserByID(context.Background(), "u1")

		assert.NoError(t, err)
		assert.Equal(t, u, got)
	})

	t.Run("should fail on empty id", func(t *testing.T) {
		_, err := uc.GetUserByID(context.Background(), " ")

		assert.Equal(t, user.ErrUserIDRequired, err)
		r.AssertNotCalled(t, "GetByID", mock.Anything, " ")
	})
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "john@mail.com", user.NormalizeEmail("  John@Mail.COM "))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"john@mail.com", true},
		{"john.doe-1@sub.example.org", true},
		{"john@mail", false},
		{"@mail.com", false},
		{"john mail.com", false},
		{"john@mail.toolongtld", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := user.ValidateEmail(tt.email)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, user.ErrInvalidEmail, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Equal(t, user.ErrInvalidPassword, user.ValidatePassword("12345"))
	assert.NoError(t, user.ValidatePassword("123456"))
	assert.NoError(t, user.ValidatePassword(strings.Repeat("a", 256)))
	assert.Equal(t, user.ErrInvalidPassword, user.ValidatePassword(strings.Repeat("a", 257)))
}
