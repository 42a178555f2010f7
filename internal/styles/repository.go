package styles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/JaimeStill/promptiverse/pkg/identity"
	"github.com/JaimeStill/promptiverse/pkg/query"
	"github.com/JaimeStill/promptiverse/pkg/repository"
)

type repo struct {
	db *sql.DB
}

// NewRepository creates a PostgreSQL-backed Store over the style_profiles table.
// Identifier matching compares both the id text and its native flag.
func NewRepository(db *sql.DB) Store {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, doc Document) (identity.Identifier, error) {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}

	args := []any{
		doc.SchemaVersion,
		doc.Name,
		doc.Description,
		tags,
		[]byte(doc.Style),
		repository.NullJSON(doc.Intent),
		repository.NullJSON(doc.Negative),
		doc.IsTemplate,
		doc.CreatedAt,
		doc.UpdatedAt,
	}

	var q string
	if doc.ID.Value == "" {
		q = `
			INSERT INTO ` + projection.Table() + `(
				native, schema_version, name, description, tags,
				style, intent, negative, is_template, created_at, updated_at)
			VALUES (true, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, native`
	} else {
		q = `
			INSERT INTO ` + projection.Table() + `(
				id, native, schema_version, name, description, tags,
				style, intent, negative, is_template, created_at, updated_at)
			VALUES ($11, $12, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, native`
		args = append(args, doc.ID.Value, doc.ID.IsNative())
	}

	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (identity.Identifier, error) {
		return repository.QueryOne(ctx, tx, q, args, scanIdentifier)
	})
	if err != nil {
		return identity.Identifier{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return id, nil
}

func (r *repo) FindOne(ctx context.Context, id identity.Identifier) (StyleProfile, bool, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("ID", id.Value).
		WhereEquals("Native", id.IsNative()).
		BuildSingleOrNull()

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProfile)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StyleProfile{}, false, nil
		}
		return StyleProfile{}, false, fmt.Errorf("find style profile %s: %w", id, err)
	}

	return p, true, nil
}

func (r *repo) UpdateOne(ctx context.Context, id identity.Identifier, doc Document) (int64, error) {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}

	q := `
		UPDATE ` + projection.Table() + `
		SET schema_version = $1, name = $2, description = $3, tags = $4,
			style = $5, intent = $6, negative = $7, is_template = $8, updated_at = $9
		WHERE id = $10 AND native = $11`

	n, err := repository.ExecCount(
		ctx, r.db, q,
		doc.SchemaVersion,
		doc.Name,
		doc.Description,
		tags,
		[]byte(doc.Style),
		repository.NullJSON(doc.Intent),
		repository.NullJSON(doc.Negative),
		doc.IsTemplate,
		doc.UpdatedAt,
		id.Value,
		id.IsNative(),
	)
	if err != nil {
		return 0, fmt.Errorf("update style profile %s: %w", id, err)
	}
	return n, nil
}

func (r *repo) DeleteOne(ctx context.Context, id identity.Identifier) (int64, error) {
	n, err := repository.ExecCount(
		ctx, r.db,
		"DELETE FROM "+projection.Table()+" WHERE id = $1 AND native = $2",
		id.Value, id.IsNative(),
	)
	if err != nil {
		return 0, fmt.Errorf("delete style profile %s: %w", id, err)
	}
	return n, nil
}

func (r *repo) Find(ctx context.Context, q Query) ([]StyleProfile, error) {
	qb := query.NewBuilder(projection, defaultSort...)
	q.Filters.Apply(qb)

	stmt, args := qb.BuildWindow(q.Window.Skip, q.Window.Limit)
	profiles, err := repository.QueryMany(ctx, r.db, stmt, args, scanProfile)
	if err != nil {
		return nil, fmt.Errorf("query style profiles: %w", err)
	}
	return profiles, nil
}

func scanIdentifier(s repository.Scanner) (identity.Identifier, error) {
	var (
		id     identity.Identifier
		native bool
	)
	if err := s.Scan(&id.Value, &native); err != nil {
		return identity.Identifier{}, err
	}
	if native {
		id.Kind = identity.Native
	}
	return id, nil
}
