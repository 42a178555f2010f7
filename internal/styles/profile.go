// Package styles implements the style profile domain: schema-validated visual
// style descriptors addressed by client-chosen slugs or store-generated ids.
package styles

import (
	"encoding/json"
	"time"

	"github.com/JaimeStill/promptiverse/pkg/identity"
)

// StyleProfile is a stored style descriptor.
type StyleProfile struct {
	ID            string          `json:"id"`
	Kind          identity.Kind   `json:"-"`
	SchemaVersion string          `json:"schema_version"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Tags          []string        `json:"tags"`
	Style         json.RawMessage `json:"style"`
	Intent        json.RawMessage `json:"intent"`
	Negative      json.RawMessage `json:"negative"`
	UsageCount    int             `json:"usage_count"`
	IsTemplate    bool            `json:"is_template"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Identifier returns the record's canonical identifier.
func (p StyleProfile) Identifier() identity.Identifier {
	return identity.Identifier{Kind: p.Kind, Value: p.ID}
}

// CreateCommand carries the data needed to create a style profile.
// A nil ID lets the store generate a native identifier.
type CreateCommand struct {
	ID          *string         `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Style       json.RawMessage `json:"style"`
	Intent      json.RawMessage `json:"intent,omitempty"`
	Negative    json.RawMessage `json:"negative,omitempty"`
	IsTemplate  bool            `json:"is_template"`
}

// UpdateCommand carries a full replacement of a style profile's mutable fields.
// The stored usage count is left untouched.
type UpdateCommand struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Style       json.RawMessage `json:"style"`
	Intent      json.RawMessage `json:"intent,omitempty"`
	Negative    json.RawMessage `json:"negative,omitempty"`
	IsTemplate  bool            `json:"is_template"`
}

// Document is the write payload handed to a Store. On insert, an empty ID
// value asks the store to generate a native identifier; on update, ID and
// CreatedAt are ignored.
type Document struct {
	ID            identity.Identifier
	SchemaVersion string
	Name          string
	Description   string
	Tags          []string
	Style         json.RawMessage
	Intent        json.RawMessage
	Negative      json.RawMessage
	IsTemplate    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
