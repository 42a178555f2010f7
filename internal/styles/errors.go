package styles

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/promptiverse/pkg/repository"
)

var (
	// ErrNotFound indicates no record matched any identifier in the lookup sequence.
	ErrNotFound = errors.New("style profile not found")
	// ErrDuplicate indicates a client-supplied identifier is already in use.
	ErrDuplicate = errors.New("style profile identifier already exists")
	// ErrValidation indicates the style payload failed schema validation.
	ErrValidation = errors.New("style validation failed")
	// ErrInvalidProfile indicates a profile field other than the style payload is invalid.
	ErrInvalidProfile = errors.New("invalid style profile")
)

// ValidationError carries the schema violations of a rejected style payload.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	switch len(e.Violations) {
	case 0:
		return ErrValidation.Error()
	case 1:
		return fmt.Sprintf("%s: %s", ErrValidation, e.Violations[0])
	default:
		return fmt.Sprintf("%s: %s (and %d more)", ErrValidation, e.Violations[0], len(e.Violations)-1)
	}
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidProfile), errors.Is(err, repository.ErrCheckViolation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
