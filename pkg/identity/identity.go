// Package identity resolves record identifiers that may be either client-chosen
// slugs or store-generated native identifiers.
//
// A caller presents a single string without knowing which scheme produced it.
// Lookup turns that string into an ordered, finite sequence of equality
// predicates so read, update, and delete paths can try each in turn and stop
// at the first match.
package identity

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// NativeLength is the length of the canonical native identifier form
// (8-4-4-4-12 hexadecimal groups).
const NativeLength = 36

// Kind distinguishes the identifier schemes stored in the primary identifier field.
type Kind int

const (
	// Slug is an opaque, client-chosen string (e.g. "style.neo_noir.v1").
	Slug Kind = iota
	// Native is an identifier generated by the store at insertion time.
	Native
)

func (k Kind) String() string {
	switch k {
	case Slug:
		return "slug"
	case Native:
		return "native"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Identifier is a tagged identifier value: a slug or a native id.
type Identifier struct {
	Kind  Kind
	Value string
}

// NewSlug wraps s as a slug identifier. The value is kept verbatim.
func NewSlug(s string) Identifier {
	return Identifier{Kind: Slug, Value: s}
}

// NewNative generates a fresh native identifier.
func NewNative() Identifier {
	return Identifier{Kind: Native, Value: uuid.NewString()}
}

// IsNative reports whether s is syntactically a native identifier.
func IsNative(s string) bool {
	if len(s) != NativeLength {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// ParseNative returns s as a normalized native identifier.
func ParseNative(s string) (Identifier, bool) {
	if len(s) != NativeLength {
		return Identifier{}, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return Identifier{}, false
	}
	return Identifier{Kind: Native, Value: id.String()}, true
}

// Parse returns the most specific variant for candidate: Native when it has
// the native syntax, Slug otherwise.
func Parse(candidate string) Identifier {
	if id, ok := ParseNative(candidate); ok {
		return id
	}
	return NewSlug(candidate)
}

func (id Identifier) String() string {
	return id.Kind.String() + ":" + id.Value
}

// IsNative reports whether the identifier was generated by the store.
func (id Identifier) IsNative() bool {
	return id.Kind == Native
}
