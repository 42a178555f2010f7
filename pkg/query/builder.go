package query

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// condition is a single WHERE predicate comparing column against one
// positional argument with op.
type condition struct {
	column string
	op     string
	arg    any
}

// SortField represents a single column in an ORDER BY clause.
// Field is the logical field name (mapped via ProjectionMap).
// Descending controls sort direction (false = ASC, true = DESC).
type SortField struct {
	Field      string
	Descending bool
}

// Builder constructs SQL queries using a fluent API with automatic parameter numbering.
// Conditions are joined with AND in the order they were added.
type Builder struct {
	projection *ProjectionMap
	conditions []condition
	sortFields []SortField
}

// NewBuilder creates a Builder for the given projection ordered by the given sort fields.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection: projection,
		sortFields: defaultSort,
	}
}

// BuildWindow returns a SELECT query with ordering that skips the first
// skip rows and returns at most limit rows.
func (b *Builder) BuildWindow(skip, limit int) (string, []any) {
	where, args := b.buildWhere()

	var sb strings.Builder
	sb.WriteString(b.selectFrom())
	sb.WriteString(where)
	sb.WriteString(b.buildOrderBy())
	sb.WriteString(" LIMIT ")
	sb.WriteString(strconv.Itoa(limit))
	sb.WriteString(" OFFSET ")
	sb.WriteString(strconv.Itoa(skip))

	return sb.String(), args
}

// BuildSingle returns a SELECT query for a single record by ID.
// Conditions added to the builder are ignored.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	stmt := fmt.Sprintf("%s WHERE %s = $1", b.selectFrom(), b.projection.Column(idField))
	return stmt, []any{id}
}

// BuildSingleOrNull returns a SELECT query limited to one row with the current conditions.
func (b *Builder) BuildSingleOrNull() (string, []any) {
	where, args := b.buildWhere()
	return b.selectFrom() + where + " LIMIT 1", args
}

// WhereContains adds a case-insensitive substring match. LIKE wildcards in
// value match literally. No-op for nil or empty values.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	return b.where(field, "ILIKE", "%"+escapeLike(*value)+"%")
}

// WhereEquals adds an equality condition. No-op for nil values.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.where(field, "=", value)
}

// WhereOverlaps adds an array overlap (&&) condition matching rows whose
// array column shares at least one element with values. No-op for empty slices.
func (b *Builder) WhereOverlaps(field string, values []string) *Builder {
	if len(values) == 0 {
		return b
	}
	return b.where(field, "&&", values)
}

func (b *Builder) where(field, op string, arg any) *Builder {
	b.conditions = append(b.conditions, condition{
		column: b.projection.Column(field),
		op:     op,
		arg:    arg,
	})
	return b
}

func (b *Builder) selectFrom() string {
	return "SELECT " + b.projection.Columns() + " FROM " + b.projection.From()
}

func (b *Builder) buildOrderBy() string {
	if len(b.sortFields) == 0 {
		return ""
	}

	parts := make([]string, len(b.sortFields))
	for i, f := range b.sortFields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = b.projection.Column(f.Field) + " " + dir
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}

// buildWhere numbers parameters from $1 in condition order.
func (b *Builder) buildWhere() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, len(b.conditions))
	args := make([]any, len(b.conditions))

	for i, cond := range b.conditions {
		clauses[i] = fmt.Sprintf("%s %s $%d", cond.column, cond.op, i+1)
		args[i] = cond.arg
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}

	return false
}
