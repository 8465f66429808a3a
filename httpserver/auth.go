package httpserver

import (
	"errors"
	"movieapi/errs"
	"movieapi/user"
	"net/http"

	"github.com/labstack/echo/v4"
)

// handleRegister godoc
// @Summary User Register
// @Description Create an account. The password hash is never returned.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body RegisterRequest true "Register payload"
// @Success 201 {object} map[string]UserResource
// @Failure 400 {object} errorResponse
// @Failure 429 {object} errorResponse
// @Router /users/register [post]
func (s *Server) handleRegister(c echo.Context) error {
	if s.AuthService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "auth service not configured")
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.AuthService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return errs.Invalid(errs.ErrorMessage(err))
		}
		return err
	}

	return c.JSON(http.StatusCreated, map[string]UserResource{
		"data": projectUser(created),
	})
}

// handleLogin godoc
// @Summary User Login
// @Description Authenticate and return a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login Credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 429 {object} errorResponse
// @Router /users/login [post]
func (s *Server) handleLogin(c echo.Context) error {
	if s.AuthService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "auth service not configured")
	}

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := s.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token": token,
	})
}
