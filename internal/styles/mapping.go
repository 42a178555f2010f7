package styles

import (
	"net/url"
	"strings"

	"github.com/JaimeStill/promptiverse/pkg/identity"
	"github.com/JaimeStill/promptiverse/pkg/query"
	"github.com/JaimeStill/promptiverse/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "style_profiles", "s").
	Project("id", "ID").
	Project("native", "Native").
	Project("schema_version", "SchemaVersion").
	Project("name", "Name").
	Project("description", "Description").
	Project("tags", "Tags").
	Project("style", "Style").
	Project("intent", "Intent").
	Project("negative", "Negative").
	Project("usage_count", "UsageCount").
	Project("is_template", "IsTemplate").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = []query.SortField{
	{Field: "Name"},
	{Field: "ID"},
}

// Filters contains optional filtering criteria for style profile queries.
// Search is a case-insensitive substring match on name; Tags matches
// profiles carrying any of the given tags.
type Filters struct {
	Search *string  `json:"search,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Search).
		WhereOverlaps("Tags", f.Tags)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// The tags parameter is repeatable.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("search"); s != "" {
		f.Search = &s
	}

	f.Tags = cleanTags(values["tags"])
	return f
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

func scanProfile(s repository.Scanner) (StyleProfile, error) {
	var (
		p      StyleProfile
		native bool
	)

	err := s.Scan(
		&p.ID,
		&native,
		&p.SchemaVersion,
		&p.Name,
		&p.Description,
		repository.TextArray(&p.Tags),
		repository.JSON(&p.Style),
		repository.JSON(&p.Intent),
		repository.JSON(&p.Negative),
		&p.UsageCount,
		&p.IsTemplate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if native {
		p.Kind = identity.Native
	}
	return p, err
}
