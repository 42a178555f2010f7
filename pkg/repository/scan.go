package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

var typeMap = pgtype.NewMap()

// TextArray returns a scanner that decodes a PostgreSQL text[] column into dst.
// A NULL array scans as an empty slice.
func TextArray(dst *[]string) sql.Scanner {
	return &textArray{dst: dst}
}

type textArray struct {
	dst *[]string
}

func (a *textArray) Scan(src any) error {
	var values []string
	if err := typeMap.SQLScanner(&values).Scan(src); err != nil {
		return fmt.Errorf("scan text array: %w", err)
	}
	if values == nil {
		values = []string{}
	}
	*a.dst = values
	return nil
}

// JSON returns a scanner that copies a json or jsonb column into dst.
// A NULL value leaves dst nil.
func JSON(dst *json.RawMessage) sql.Scanner {
	return &jsonValue{dst: dst}
}

type jsonValue struct {
	dst *json.RawMessage
}

func (j *jsonValue) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j.dst = nil
	case []byte:
		*j.dst = append(json.RawMessage(nil), v...)
	case string:
		*j.dst = json.RawMessage(v)
	default:
		return fmt.Errorf("scan json: unsupported source type %T", src)
	}
	return nil
}

// NullJSON returns raw as a query argument, or nil when raw is empty or
// the JSON null literal, so optional documents are stored as SQL NULL.
func NullJSON(raw json.RawMessage) any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return []byte(raw)
}
