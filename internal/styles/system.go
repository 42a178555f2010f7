package styles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/JaimeStill/promptiverse/pkg/identity"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
	"github.com/JaimeStill/promptiverse/pkg/schema"
)

// MaxIDLength bounds client-supplied slug identifiers.
const MaxIDLength = 128

// System defines the style profile domain operations.
type System interface {
	// Handler returns the HTTP handler for style profile routes.
	Handler(maxBodySize int64) *Handler
	// List returns a window of profiles matching filters, ordered by name.
	List(ctx context.Context, filters Filters, window pagination.Window) ([]StyleProfile, error)
	// Find resolves candidate as a slug, then as a native id, and returns the first match.
	Find(ctx context.Context, candidate string) (*StyleProfile, error)
	// Create validates and stores a new profile and returns it as persisted.
	Create(ctx context.Context, cmd CreateCommand) (*StyleProfile, error)
	// Update validates and replaces the profile resolved from candidate.
	Update(ctx context.Context, candidate string, cmd UpdateCommand) (*StyleProfile, error)
	// Delete removes the profile resolved from candidate.
	Delete(ctx context.Context, candidate string) error
	// Validate checks a style document against the loaded schema without storing it.
	Validate(doc any) schema.Result
}

// Option configures the style service.
type Option func(*service)

// WithClock replaces the time source used for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	store      Store
	registry   *schema.Registry
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// New creates the style profile service over store, validating style
// payloads with registry.
func New(
	store Store,
	registry *schema.Registry,
	logger *slog.Logger,
	pagination pagination.Config,
	opts ...Option,
) System {
	s := &service{
		store:      store,
		registry:   registry,
		logger:     logger.With("system", "styles"),
		pagination: pagination,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Handler(maxBodySize int64) *Handler {
	return NewHandler(s, s.logger, s.pagination, maxBodySize)
}

func (s *service) List(ctx context.Context, filters Filters, window pagination.Window) ([]StyleProfile, error) {
	window.Normalize(s.pagination)

	profiles, err := s.store.Find(ctx, Query{Filters: filters, Window: window})
	if err != nil {
		return nil, err
	}
	return pagination.Items(profiles), nil
}

func (s *service) Find(ctx context.Context, candidate string) (*StyleProfile, error) {
	var found StyleProfile

	_, ok, err := identity.Lookup(candidate).Each(ctx, func(ctx context.Context, id identity.Identifier) (bool, error) {
		p, hit, err := s.store.FindOne(ctx, id)
		if hit {
			found = p
		}
		return hit, err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, candidate)
	}

	return &found, nil
}

func (s *service) Create(ctx context.Context, cmd CreateCommand) (*StyleProfile, error) {
	if err := validateName(cmd.Name); err != nil {
		return nil, err
	}

	var id identity.Identifier
	if cmd.ID != nil {
		if err := validateID(*cmd.ID); err != nil {
			return nil, err
		}
		id = identity.NewSlug(*cmd.ID)
	}

	intent, negative, err := nestedDocuments(cmd.Intent, cmd.Negative)
	if err != nil {
		return nil, err
	}

	if err := s.validateStyle(cmd.Style); err != nil {
		return nil, err
	}

	now := s.timestamp()
	doc := Document{
		ID:            id,
		SchemaVersion: s.registry.Version(),
		Name:          cmd.Name,
		Description:   cmd.Description,
		Tags:          cmd.Tags,
		Style:         cmd.Style,
		Intent:        intent,
		Negative:      negative,
		IsTemplate:    cmd.IsTemplate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	assigned, err := s.store.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}

	p, ok, err := s.store.FindOne(ctx, assigned)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("style profile %s missing after insert", assigned)
	}

	s.logger.Info("style profile created", "id", p.ID, "kind", p.Kind, "name", p.Name)
	return &p, nil
}

func (s *service) Update(ctx context.Context, candidate string, cmd UpdateCommand) (*StyleProfile, error) {
	if err := validateName(cmd.Name); err != nil {
		return nil, err
	}
	intent, negative, err := nestedDocuments(cmd.Intent, cmd.Negative)
	if err != nil {
		return nil, err
	}
	if err := s.validateStyle(cmd.Style); err != nil {
		return nil, err
	}

	doc := Document{
		SchemaVersion: s.registry.Version(),
		Name:          cmd.Name,
		Description:   cmd.Description,
		Tags:          cmd.Tags,
		Style:         cmd.Style,
		Intent:        intent,
		Negative:      negative,
		IsTemplate:    cmd.IsTemplate,
		UpdatedAt:     s.timestamp(),
	}

	matched, ok, err := identity.Lookup(candidate).Each(ctx, func(ctx context.Context, id identity.Identifier) (bool, error) {
		n, err := s.store.UpdateOne(ctx, id, doc)
		return n > 0, err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, candidate)
	}

	p, ok, err := s.store.FindOne(ctx, matched)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, candidate)
	}

	s.logger.Info("style profile updated", "id", p.ID, "kind", p.Kind, "name", p.Name)
	return &p, nil
}

func (s *service) Delete(ctx context.Context, candidate string) error {
	deleted, ok, err := identity.Lookup(candidate).Each(ctx, func(ctx context.Context, id identity.Identifier) (bool, error) {
		n, err := s.store.DeleteOne(ctx, id)
		return n > 0, err
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, candidate)
	}

	s.logger.Info("style profile deleted", "id", deleted.Value, "kind", deleted.Kind)
	return nil
}

func (s *service) Validate(doc any) schema.Result {
	return s.registry.Validate(doc)
}

func (s *service) validateStyle(style []byte) error {
	res := s.registry.Validate(style)
	if res.Valid {
		return nil
	}
	return &ValidationError{Violations: res.Errors}
}

// timestamp returns the current UTC time truncated to the store's microsecond precision.
func (s *service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// nestedDocuments normalizes the optional intent and negative documents.
// Absent or null values become nil; anything other than a JSON object is rejected.
func nestedDocuments(intent, negative json.RawMessage) (json.RawMessage, json.RawMessage, error) {
	intent, err := nestedDocument("intent", intent)
	if err != nil {
		return nil, nil, err
	}
	negative, err = nestedDocument("negative", negative)
	if err != nil {
		return nil, nil, err
	}
	return intent, negative, nil
}

func nestedDocument(field string, raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: %s must be a JSON object", ErrInvalidProfile, field)
	}
	return trimmed, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidProfile)
	}
	return nil
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidProfile)
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("%w: id exceeds %d characters", ErrInvalidProfile, MaxIDLength)
	}
	if strings.ContainsAny(id, "/?#") || strings.ContainsFunc(id, unicode.IsSpace) {
		return fmt.Errorf("%w: id must not contain whitespace, '/', '?' or '#'", ErrInvalidProfile)
	}
	return nil
}
