package styles

import (
	"context"

	"github.com/JaimeStill/promptiverse/pkg/identity"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
)

// Store is the document store primitive set the service is built on.
// Every identified operation matches exactly one identifier variant: a slug
// never matches a native record with the same text, and vice versa.
type Store interface {
	// Insert stores doc and returns its identifier. Returns ErrDuplicate when
	// a client-supplied identifier is taken.
	Insert(ctx context.Context, doc Document) (identity.Identifier, error)
	// FindOne returns the record matching id; ok is false when absent.
	FindOne(ctx context.Context, id identity.Identifier) (StyleProfile, bool, error)
	// UpdateOne replaces the mutable fields of the record matching id and
	// returns the matched count.
	UpdateOne(ctx context.Context, id identity.Identifier, doc Document) (int64, error)
	// DeleteOne removes the record matching id and returns the deleted count.
	DeleteOne(ctx context.Context, id identity.Identifier) (int64, error)
	// Find returns records matching q in name order.
	Find(ctx context.Context, q Query) ([]StyleProfile, error)
}

// Query selects a window of style profiles.
type Query struct {
	Filters Filters
	Window  pagination.Window
}
