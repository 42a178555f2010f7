// Package handlers provides JSON response helpers shared by domain HTTP handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptiverse/pkg/formatting"
)

// ErrorBody is the JSON body written for failed requests.
type ErrorBody struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

// Message is the JSON body written for operations that return no record.
type Message struct {
	Message string `json:"message"`
}

// RespondMessage writes msg as a Message body with status 200.
func RespondMessage(w http.ResponseWriter, msg string) {
	RespondJSON(w, http.StatusOK, Message{Message: msg})
}

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as a JSON error body.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	RespondErrors(w, logger, status, err, nil)
}

// RespondErrors logs err and writes it with a list of detail messages.
func RespondErrors(w http.ResponseWriter, logger *slog.Logger, status int, err error, details []string) {
	logger.Error("handler error", "error", err, "status", status)
	RespondJSON(w, status, ErrorBody{Error: err.Error(), Errors: details})
}

// DecodeJSON decodes the request body into v, rejecting bodies larger than maxBytes.
// A non-positive maxBytes disables the limit.
func DecodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) error {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return fmt.Errorf("request body exceeds %s", formatting.FormatBytes(mbe.Limit, 0))
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
