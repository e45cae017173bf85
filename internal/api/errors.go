package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rentcore/rentcore/internal/session"
)

type ApiError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}

	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func lower(s string) string {
	return strings.ToLower(s)
}

func NewBadRequestError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    lower(http.StatusText(http.StatusBadRequest)),
	}
}

func NewNotFoundError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusNotFound,
		Message:    lower(http.StatusText(http.StatusNotFound)),
	}
}

func NewInternalServerError(err error) *ApiError {
	return &ApiError{
		StatusCode: http.StatusInternalServerError,
		Message:    lower(http.StatusText(http.StatusInternalServerError)),
		Err:        err,
	}
}

func NewUnauthorizedError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusUnauthorized,
		Message:    lower(http.StatusText(http.StatusUnauthorized)),
	}
}

func NewForbiddenError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusForbidden,
		Message:    lower(http.StatusText(http.StatusForbidden)),
	}
}

func NewConflictError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusConflict,
		Message:    lower(http.StatusText(http.StatusConflict)),
	}
}

func NewMethodNotAllowedError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusMethodNotAllowed,
		Message:    lower(http.StatusText(http.StatusMethodNotAllowed)),
	}
}

func NewServiceUnavailableError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusServiceUnavailable,
		Message:    lower(http.StatusText(http.StatusServiceUnavailable)),
	}
}

// fromSessionError maps controller errors onto the API error envelope.
func fromSessionError(err error) *ApiError {
	switch {
	case errors.Is(err, session.ErrAuthRequired),
		errors.Is(err, session.ErrInvalidCredentials):
		return NewUnauthorizedError()
	case errors.Is(err, session.ErrForbidden),
		errors.Is(err, session.ErrBlocked):
		return NewForbiddenError()
	case errors.Is(err, session.ErrNotFound):
		return NewNotFoundError()
	case errors.Is(err, session.ErrDefaultCity),
		errors.Is(err, session.ErrCityExists),
		errors.Is(err, session.ErrEmailTaken):
		return NewConflictError()
	case errors.Is(err, session.ErrNoImages),
		errors.Is(err, session.ErrEmptyMessage):
		return NewBadRequestError()
	default:
		return NewInternalServerError(err)
	}
}
