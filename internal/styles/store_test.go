package styles_test

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/identity"
)

// memStore is an in-memory styles.Store. Records are keyed by identifier
// kind and value, so a slug never matches a native record with the same text.
type memStore struct {
	mu      sync.Mutex
	records map[identity.Identifier]styles.StyleProfile
	calls   []string
}

func newMemStore() *memStore {
	return &memStore{records: make(map[identity.Identifier]styles.StyleProfile)}
}

func (m *memStore) record(op string, id identity.Identifier) {
	m.calls = append(m.calls, op+" "+id.String())
}

func (m *memStore) Insert(ctx context.Context, doc styles.Document) (identity.Identifier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := doc.ID
	if id.Value == "" {
		id = identity.NewNative()
	}
	m.record("insert", id)

	if _, exists := m.records[id]; exists {
		return identity.Identifier{}, styles.ErrDuplicate
	}

	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}

	m.records[id] = styles.StyleProfile{
		ID:            id.Value,
		Kind:          id.Kind,
		SchemaVersion: doc.SchemaVersion,
		Name:          doc.Name,
		Description:   doc.Description,
		Tags:          tags,
		Style:         doc.Style,
		Intent:        doc.Intent,
		Negative:      doc.Negative,
		IsTemplate:    doc.IsTemplate,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
	return id, nil
}

func (m *memStore) FindOne(ctx context.Context, id identity.Identifier) (styles.StyleProfile, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("find", id)

	p, ok := m.records[id]
	return p, ok, nil
}

func (m *memStore) UpdateOne(ctx context.Context, id identity.Identifier, doc styles.Document) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("update", id)

	p, ok := m.records[id]
	if !ok {
		return 0, nil
	}

	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}

	p.SchemaVersion = doc.SchemaVersion
	p.Name = doc.Name
	p.Description = doc.Description
	p.Tags = tags
	p.Style = doc.Style
	p.Intent = doc.Intent
	p.Negative = doc.Negative
	p.IsTemplate = doc.IsTemplate
	p.UpdatedAt = doc.UpdatedAt
	m.records[id] = p
	return 1, nil
}

func (m *memStore) DeleteOne(ctx context.Context, id identity.Identifier) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("delete", id)

	if _, ok := m.records[id]; !ok {
		return 0, nil
	}
	delete(m.records, id)
	return 1, nil
}

func (m *memStore) Find(ctx context.Context, q styles.Query) ([]styles.StyleProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []styles.StyleProfile
	for _, p := range m.records {
		if q.Filters.Search != nil && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(*q.Filters.Search)) {
			continue
		}
		if len(q.Filters.Tags) > 0 && !slices.ContainsFunc(p.Tags, func(t string) bool {
			return slices.Contains(q.Filters.Tags, t)
		}) {
			continue
		}
		out = append(out, p)
	}

	slices.SortFunc(out, func(a, b styles.StyleProfile) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	if q.Window.Skip >= len(out) {
		return nil, nil
	}
	out = out[q.Window.Skip:]
	if len(out) > q.Window.Limit {
		out = out[:q.Window.Limit]
	}
	return out, nil
}

func (m *memStore) resetCalls() {
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}

func (m *memStore) callLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}
