// Package prompts implements the prompt catalog domain.
// It provides types, data access, and HTTP handlers for generative-AI
// prompt specifications addressed by store-generated UUIDs.
package prompts

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Prompt is a stored prompt specification. StyleProfileID optionally names
// a style profile; the reference is not checked and may dangle.
type Prompt struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ModalType      ModalType       `json:"modal_type"`
	Content        json.RawMessage `json:"content"`
	StyleProfileID *string         `json:"style_profile_id"`
	Tags           []string        `json:"tags"`
	Metadata       json.RawMessage `json:"metadata"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateCommand carries the data needed to create a new prompt.
type CreateCommand struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ModalType      ModalType       `json:"modal_type"`
	Content        json.RawMessage `json:"content"`
	StyleProfileID *string         `json:"style_profile_id"`
	Tags           []string        `json:"tags"`
	Metadata       json.RawMessage `json:"metadata"`
}

// UpdateCommand replaces every mutable field of an existing prompt.
type UpdateCommand CreateCommand
