package api

import (
	"errors"
	"net/http"

	"github.com/contentforge/contentforge-api/internal/domain"
	"github.com/contentforge/contentforge-api/internal/store"
)

// Machine-readable error kinds returned in error responses. Clients branch
// on these rather than on message text.
const (
	KindInvalidInput      = "invalid_input"
	KindNotFound          = "not_found"
	KindInvalidTransition = "invalid_transition"
	KindInternal          = "internal"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToKind maps internal errors to the machine-readable error kind
// included in error responses.
func MapErrorToKind(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return KindNotFound

	case errors.Is(err, domain.ErrInvalidTransition):
		return KindInvalidTransition

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return KindInvalidInput

	default:
		return KindInternal
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, domain.ErrInvalidTransition):
		return err.Error()

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
