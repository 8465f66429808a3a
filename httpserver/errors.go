package httpserver

import (
	"errors"
	"fmt"
	"movieapi/errs"
	"movieapi/pkg/sentry"
	"net/http"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error"

// errorResponse is the error body. Production responses carry only Error and
// Errors; development responses also echo the underlying error.
type errorResponse struct {
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error"`
	Errors  []string `json:"errors,omitempty"`
}

// handleHTTPError maps application errors to HTTP status codes and writes
// the error body. Every 5xx is logged and reported to sentry.
func (s *Server) handleHTTPError(err error, c echo.Context) {
	// Don't write response if already committed
	if c.Response().Committed {
		return
	}

	code, message := statusAndMessage(err)
	details := errs.ErrorDetails(err)

	if code >= http.StatusInternalServerError {
		message = internalErrorMessage
		s.Logger.Errorw(err.Error(), "request_id", s.requestID(c), "path", c.Path())
		sentry.WithContext(c).Error(err)
	}

	body := errorResponse{Error: message, Errors: details}
	if !s.Production {
		body.Message = message
		body.Error = err.Error()
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		s.Logger.Errorw("write error response", "error", err)
	}
}

func statusAndMessage(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		if he.Message != nil {
			return he.Code, fmt.Sprint(he.Message)
		}
		return he.Code, http.StatusText(he.Code)
	}

	code := statusFor(errs.ErrorCode(err))
	if code >= http.StatusInternalServerError {
		return code, internalErrorMessage
	}
	return code, errs.ErrorMessage(err)
}

func statusFor(code string) int {
	switch code {
	case errs.EINVALID:
		return http.StatusBadRequest
	case errs.ENOTFOUND:
		return http.StatusNotFound
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case errs.EFORBIDDEN:
		return http.StatusForbidden
	case errs.ECONFLICT:
		return http.StatusConflict
	case errs.ETOOMANYREQUESTS:
		return http.StatusTooManyRequests
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
