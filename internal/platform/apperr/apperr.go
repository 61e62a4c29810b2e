// Package apperr defines the error taxonomy shared by the triage, catalog and
// queue packages and maps it onto HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrCatalogUnavailable indicates the condition catalog could not be read.
	ErrCatalogUnavailable = errors.New("condition catalog unavailable")

	// ErrStorageFailure indicates a queue or catalog read/write failed.
	ErrStorageFailure = errors.New("storage failure")

	// ErrNotFound indicates the addressed record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness constraint was violated.
	ErrConflict = errors.New("conflict")
)

// ValidationError is returned for malformed caller input. Message is shown to
// the caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a *ValidationError.
func Validation(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Storage wraps err as a storage failure while keeping the cause in the chain.
func Storage(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageFailure, err)
}

// CatalogUnavailable wraps err as a catalog failure.
func CatalogUnavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
}

// Message is the JSON body used for every error response.
type Message struct {
	Message string `json:"message"`
}

// ToHTTP maps err onto an *echo.HTTPError. fallback is the message used for
// errors whose text must not leak to the caller (storage, unknown).
func ToHTTP(err error, fallback string) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, Message{ve.Message})
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, Message{fallback})
	case errors.Is(err, ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, Message{fallback})
	case errors.Is(err, ErrCatalogUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, Message{"Condition catalog is unavailable."})
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, Message{fallback}).SetInternal(err)
	}
}
