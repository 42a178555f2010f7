// Package schema holds the JSON Schema used to validate style payloads.
//
// A Registry is compiled once at startup and never mutated, so a single value
// can be shared by every request without synchronization.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// VersionKeyword is the schema keyword that carries the schema revision.
const VersionKeyword = "x-schema-version"

// DefaultVersion is used when the schema document does not declare a revision.
const DefaultVersion = "1.0.0"

var printer = message.NewPrinter(language.English)

// Registry holds one compiled schema document.
type Registry struct {
	name    string
	version string
	schema  *jsonschema.Schema
}

// Load reads and compiles a schema document. name identifies the resource in
// compiler errors and log output.
func Load(r io.Reader, name string) (*Registry, error) {
	doc, err := jsonschema.UnmarshalJSON(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrLoad, name, err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("%w: add %s: %w", ErrLoad, name, err)
	}

	compiled, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: compile %s: %w", ErrLoad, name, err)
	}

	return &Registry{
		name:    name,
		version: versionOf(doc),
		schema:  compiled,
	}, nil
}

// Name returns the resource name the schema was loaded from.
func (r *Registry) Name() string {
	return r.name
}

// Version returns the schema revision recorded on validated documents.
func (r *Registry) Version() string {
	return r.version
}

// Validate checks doc against the schema. doc may be a decoded JSON value,
// a json.RawMessage, or raw JSON bytes. A nil raw message validates as null.
func (r *Registry) Validate(doc any) Result {
	inst, err := instance(doc)
	if err != nil {
		return invalid(Violation{Keyword: "json", Message: err.Error()})
	}

	err = r.schema.Validate(inst)
	if err == nil {
		return Result{Valid: true, Errors: []string{}}
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return invalid(Violation{Message: err.Error()})
	}

	var violations []Violation
	collect(ve, &violations)
	return invalid(violations...)
}

func instance(doc any) (any, error) {
	var data []byte
	switch v := doc.(type) {
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		return doc, nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// collect flattens the cause tree into its leaves. Interior nodes only group
// the failures of their subschemas.
func collect(ve *jsonschema.ValidationError, out *[]Violation) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Violation{
			Path:    pointer(ve.InstanceLocation),
			Keyword: strings.Join(ve.ErrorKind.KeywordPath(), "/"),
			Message: ve.ErrorKind.LocalizedString(printer),
		})
		return
	}
	for _, cause := range ve.Causes {
		collect(cause, out)
	}
}

func pointer(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	return "/" + strings.Join(segments, "/")
}

func versionOf(doc any) string {
	m, ok := doc.(map[string]any)
	if !ok {
		return DefaultVersion
	}
	if v, ok := m[VersionKeyword].(string); ok && v != "" {
		return v
	}
	return DefaultVersion
}
