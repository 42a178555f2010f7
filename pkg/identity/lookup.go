package identity

import "context"

// Sequence is an ordered list of identifiers to try against the primary
// identifier field. It always holds one or two entries.
type Sequence []Identifier

// Lookup builds the lookup sequence for candidate.
//
// The first attempt always matches candidate verbatim as a slug. When
// candidate also has the native syntax, a native attempt follows.
func Lookup(candidate string) Sequence {
	seq := Sequence{NewSlug(candidate)}
	if id, ok := ParseNative(candidate); ok {
		seq = append(seq, id)
	}
	return seq
}

// AttemptFunc tries a single identifier. It returns true when the attempt
// matched a record.
type AttemptFunc func(ctx context.Context, id Identifier) (bool, error)

// Each runs attempt for every identifier in order and stops at the first
// match or error. It returns the identifier that matched; ok is false when
// every attempt missed.
func (s Sequence) Each(ctx context.Context, attempt AttemptFunc) (Identifier, bool, error) {
	for _, id := range s {
		hit, err := attempt(ctx, id)
		if err != nil {
			return Identifier{}, false, err
		}
		if hit {
			return id, true, nil
		}
	}
	return Identifier{}, false, nil
}
