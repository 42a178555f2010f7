package prompts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptiverse/pkg/pagination"
)

// System defines the public contract for prompt domain operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	// List returns a window of prompts matching filters, newest first.
	List(ctx context.Context, filters Filters, window pagination.Window) ([]Prompt, error)

	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Create(ctx context.Context, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ParseID parses a native prompt identifier.
// Returns ErrMalformedID if s is not a UUID.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrMalformedID, s)
	}
	return id, nil
}

// Normalize validates cmd and fills defaults: tags become an empty list
// and missing metadata becomes an empty object.
func (cmd *CreateCommand) Normalize() error {
	if strings.TrimSpace(cmd.Title) == "" {
		return fmt.Errorf("%w: title required", ErrInvalidPrompt)
	}
	if _, err := ParseModalType(string(cmd.ModalType)); err != nil {
		return err
	}
	if !isObject(cmd.Content) {
		return fmt.Errorf("%w: content must be a JSON object", ErrInvalidPrompt)
	}

	if isEmpty(cmd.Metadata) {
		cmd.Metadata = json.RawMessage(`{}`)
	} else if !isObject(cmd.Metadata) {
		return fmt.Errorf("%w: metadata must be a JSON object", ErrInvalidPrompt)
	}

	cmd.Tags = cleanTags(cmd.Tags)
	if cmd.Tags == nil {
		cmd.Tags = []string{}
	}
	return nil
}

// Normalize validates cmd and fills defaults as CreateCommand.Normalize does.
func (cmd *UpdateCommand) Normalize() error {
	return (*CreateCommand)(cmd).Normalize()
}

func isEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Valid(trimmed)
}
