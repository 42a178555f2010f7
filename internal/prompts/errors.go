package prompts

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/promptiverse/pkg/repository"
)

// Domain errors for prompt operations.
var (
	ErrNotFound         = errors.New("prompt not found")
	ErrDuplicate        = errors.New("prompt already exists")
	ErrMalformedID      = errors.New("invalid prompt id format")
	ErrInvalidModalType = errors.New("modal_type must be one of text, image, video, code, audio, other")
	ErrInvalidPrompt    = errors.New("invalid prompt")
)

// MapHTTPStatus maps prompt domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrMalformedID) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrInvalidModalType) || errors.Is(err, ErrInvalidPrompt) ||
		errors.Is(err, repository.ErrCheckViolation) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
