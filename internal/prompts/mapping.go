package prompts

import (
	"net/url"
	"strings"

	"github.com/JaimeStill/promptiverse/pkg/query"
	"github.com/JaimeStill/promptiverse/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("title", "Title").
	Project("description", "Description").
	Project("modal_type", "ModalType").
	Project("content", "Content").
	Project("style_profile_id", "StyleProfileID").
	Project("tags", "Tags").
	Project("metadata", "Metadata").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID"},
}

// Filters contains optional filtering criteria for prompt queries.
// Nil fields are ignored. ModalType uses exact matching, Search is a
// case-insensitive substring match on title, and Tags matches prompts
// carrying any of the given tags.
type Filters struct {
	ModalType *ModalType `json:"modal_type,omitempty"`
	Search    *string    `json:"search,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var modal any
	if f.ModalType != nil {
		modal = string(*f.ModalType)
	}

	return b.
		WhereEquals("ModalType", modal).
		WhereContains("Title", f.Search).
		WhereOverlaps("Tags", f.Tags)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// An unknown modal_type is rejected with ErrInvalidModalType.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters

	if m := values.Get("modal_type"); m != "" {
		modal, err := ParseModalType(m)
		if err != nil {
			return Filters{}, err
		}
		f.ModalType = &modal
	}

	if s := values.Get("search"); s != "" {
		f.Search = &s
	}

	f.Tags = cleanTags(values["tags"])
	return f, nil
}

func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var (
		p     Prompt
		modal string
	)

	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&modal,
		repository.JSON(&p.Content),
		&p.StyleProfileID,
		repository.TextArray(&p.Tags),
		repository.JSON(&p.Metadata),
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	p.ModalType = ModalType(modal)
	return p, err
}
