package styles_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/handlers"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
	"github.com/JaimeStill/promptiverse/pkg/routes"
	"github.com/JaimeStill/promptiverse/pkg/schema"
)

type mockSystem struct {
	listFn     func(ctx context.Context, filters styles.Filters, window pagination.Window) ([]styles.StyleProfile, error)
	findFn     func(ctx context.Context, candidate string) (*styles.StyleProfile, error)
	createFn   func(ctx context.Context, cmd styles.CreateCommand) (*styles.StyleProfile, error)
	updateFn   func(ctx context.Context, candidate string, cmd styles.UpdateCommand) (*styles.StyleProfile, error)
	deleteFn   func(ctx context.Context, candidate string) error
	validateFn func(doc any) schema.Result
}

func (m *mockSystem) Handler(maxBodySize int64) *styles.Handler {
	return styles.NewHandler(m, discard(), testPagination, maxBodySize)
}

func (m *mockSystem) List(ctx context.Context, filters styles.Filters, window pagination.Window) ([]styles.StyleProfile, error) {
	return m.listFn(ctx, filters, window)
}

func (m *mockSystem) Find(ctx context.Context, candidate string) (*styles.StyleProfile, error) {
	return m.findFn(ctx, candidate)
}

func (m *mockSystem) Create(ctx context.Context, cmd styles.CreateCommand) (*styles.StyleProfile, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Update(ctx context.Context, candidate string, cmd styles.UpdateCommand) (*styles.StyleProfile, error) {
	return m.updateFn(ctx, candidate, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, candidate string) error {
	return m.deleteFn(ctx, candidate)
}

func (m *mockSystem) Validate(doc any) schema.Result {
	return m.validateFn(doc)
}

func serve(sys styles.System, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler(1<<20).Routes())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func neoNoir() *styles.StyleProfile {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &styles.StyleProfile{
		ID:            "style.neo_noir.v1",
		SchemaVersion: "1.0.0",
		Name:          "Neo-Noir Cinematic",
		Tags:          []string{"noir"},
		Style:         json.RawMessage(`{}`),
		IsTemplate:    true,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
}

func TestHandlerList(t *testing.T) {
	var gotFilters styles.Filters
	var gotWindow pagination.Window

	sys := &mockSystem{
		listFn: func(ctx context.Context, filters styles.Filters, window pagination.Window) ([]styles.StyleProfile, error) {
			gotFilters, gotWindow = filters, window
			return []styles.StyleProfile{*neoNoir()}, nil
		},
	}

	rec := serve(sys, httptest.NewRequest("GET", "/styles?search=noir&tags=film&tags=%20retro&tags=&skip=5&limit=10", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if gotFilters.Search == nil || *gotFilters.Search != "noir" {
		t.Errorf("search = %v", gotFilters.Search)
	}
	if !slices.Equal(gotFilters.Tags, []string{"film", "retro"}) {
		t.Errorf("tags = %v", gotFilters.Tags)
	}
	if gotWindow != (pagination.Window{Skip: 5, Limit: 10}) {
		t.Errorf("window = %+v", gotWindow)
	}

	var body []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 1 || body[0]["id"] != "style.neo_noir.v1" {
		t.Errorf("body = %v", body)
	}
}

func TestHandlerListDefaults(t *testing.T) {
	var gotWindow pagination.Window
	sys := &mockSystem{
		listFn: func(ctx context.Context, filters styles.Filters, window pagination.Window) ([]styles.StyleProfile, error) {
			gotWindow = window
			return []styles.StyleProfile{}, nil
		},
	}

	rec := serve(sys, httptest.NewRequest("GET", "/styles", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotWindow != (pagination.Window{Skip: 0, Limit: 50}) {
		t.Errorf("window = %+v, want skip 0 limit 50", gotWindow)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %s, want []", rec.Body)
	}
}

func TestHandlerSearch(t *testing.T) {
	var gotFilters styles.Filters
	var gotWindow pagination.Window
	sys := &mockSystem{
		listFn: func(ctx context.Context, filters styles.Filters, window pagination.Window) ([]styles.StyleProfile, error) {
			gotFilters, gotWindow = filters, window
			return []styles.StyleProfile{}, nil
		},
	}

	body := `{"search":"ghibli","tags":["anime"],"skip":2,"limit":3}`
	rec := serve(sys, httptest.NewRequest("POST", "/styles/search", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if gotFilters.Search == nil || *gotFilters.Search != "ghibli" || !slices.Equal(gotFilters.Tags, []string{"anime"}) {
		t.Errorf("filters = %+v", gotFilters)
	}
	if gotWindow != (pagination.Window{Skip: 2, Limit: 3}) {
		t.Errorf("window = %+v", gotWindow)
	}
}

func TestHandlerFind(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"found", nil, http.StatusOK},
		{"not found", fmt.Errorf("%w: x", styles.ErrNotFound), http.StatusNotFound},
		{"store failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCandidate string
			sys := &mockSystem{
				findFn: func(ctx context.Context, candidate string) (*styles.StyleProfile, error) {
					gotCandidate = candidate
					if tt.err != nil {
						return nil, tt.err
					}
					return neoNoir(), nil
				},
			}

			rec := serve(sys, httptest.NewRequest("GET", "/styles/style.neo_noir.v1", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if gotCandidate != "style.neo_noir.v1" {
				t.Errorf("candidate = %q", gotCandidate)
			}
			if tt.err == nil {
				var p styles.StyleProfile
				if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if p.Name != "Neo-Noir Cinematic" {
					t.Errorf("name = %q", p.Name)
				}
			}
		})
	}
}

func TestHandlerCreate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var got styles.CreateCommand
		sys := &mockSystem{
			createFn: func(ctx context.Context, cmd styles.CreateCommand) (*styles.StyleProfile, error) {
				got = cmd
				p := neoNoir()
				p.Style = cmd.Style
				return p, nil
			},
		}

		body := `{"id":"style.neo_noir.v1","name":"Neo-Noir Cinematic","tags":["noir"],"style":` + moodStyle + `}`
		rec := serve(sys, httptest.NewRequest("POST", "/styles", strings.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		if got.ID == nil || *got.ID != "style.neo_noir.v1" {
			t.Errorf("id = %v", got.ID)
		}

		var resp map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp["created_at"] != resp["updated_at"] {
			t.Errorf("created_at %v != updated_at %v", resp["created_at"], resp["updated_at"])
		}
		if _, ok := resp["style"].(map[string]any)["aesthetic"]; !ok {
			t.Errorf("style = %v", resp["style"])
		}
	})

	t.Run("validation failure lists violations", func(t *testing.T) {
		sys := &mockSystem{
			createFn: func(ctx context.Context, cmd styles.CreateCommand) (*styles.StyleProfile, error) {
				return nil, &styles.ValidationError{Violations: []string{"/palette/mode: enum: value must be one of ..."}}
			},
		}

		rec := serve(sys, httptest.NewRequest("POST", "/styles", strings.NewReader(`{"name":"x","style":{}}`)))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d", rec.Code)
		}
		var body handlers.ErrorBody
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.Errors) != 1 || !strings.HasPrefix(body.Errors[0], "/palette/mode") {
			t.Errorf("errors = %v", body.Errors)
		}
	})

	t.Run("errors map to status", func(t *testing.T) {
		tests := []struct {
			err  error
			want int
		}{
			{styles.ErrDuplicate, http.StatusConflict},
			{fmt.Errorf("%w: name required", styles.ErrInvalidProfile), http.StatusUnprocessableEntity},
		}
		for _, tt := range tests {
			sys := &mockSystem{
				createFn: func(ctx context.Context, cmd styles.CreateCommand) (*styles.StyleProfile, error) {
					return nil, tt.err
				},
			}
			rec := serve(sys, httptest.NewRequest("POST", "/styles", strings.NewReader(`{"name":"x","style":{}}`)))
			if rec.Code != tt.want {
				t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.want)
			}
		}
	})

	t.Run("non-object intent or negative", func(t *testing.T) {
		sys, _, _ := newService(t)

		for _, extra := range []string{`"intent":5`, `"negative":"blurry"`} {
			body := `{"name":"Nested","style":` + moodStyle + `,` + extra + `}`
			rec := serve(sys, httptest.NewRequest("POST", "/styles", strings.NewReader(body)))
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("%s: status = %d, want 422", extra, rec.Code)
			}
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		sys := &mockSystem{}
		rec := serve(sys, httptest.NewRequest("POST", "/styles", strings.NewReader(`{"name":`)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerUpdate(t *testing.T) {
	var gotCandidate string
	var got styles.UpdateCommand
	sys := &mockSystem{
		updateFn: func(ctx context.Context, candidate string, cmd styles.UpdateCommand) (*styles.StyleProfile, error) {
			gotCandidate, got = candidate, cmd
			if candidate == "style.missing.v1" {
				return nil, styles.ErrNotFound
			}
			p := neoNoir()
			p.Name = cmd.Name
			return p, nil
		},
	}

	body := `{"name":"Renamed","style":{}}`
	rec := serve(sys, httptest.NewRequest("PUT", "/styles/style.neo_noir.v1", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotCandidate != "style.neo_noir.v1" || got.Name != "Renamed" {
		t.Errorf("candidate %q cmd %+v", gotCandidate, got)
	}

	rec = serve(sys, httptest.NewRequest("PUT", "/styles/style.missing.v1", strings.NewReader(body)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing: status = %d, want 404", rec.Code)
	}
}

func TestHandlerUpdateRejectsNonObjectIntent(t *testing.T) {
	sys, _, _ := newService(t)
	ctx := context.Background()

	if _, err := sys.Create(ctx, createCmd(ptr("style.nested.v1"), "Nested", moodStyle)); err != nil {
		t.Fatalf("create: %v", err)
	}

	body := `{"name":"Nested","style":` + moodStyle + `,"intent":[1,2]}`
	rec := serve(sys, httptest.NewRequest("PUT", "/styles/style.nested.v1", strings.NewReader(body)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestHandlerDelete(t *testing.T) {
	deleted := map[string]bool{}
	sys := &mockSystem{
		deleteFn: func(ctx context.Context, candidate string) error {
			if candidate != "style.neo_noir.v1" || deleted[candidate] {
				return styles.ErrNotFound
			}
			deleted[candidate] = true
			return nil
		},
	}

	tests := []struct {
		path string
		want int
	}{
		{"/styles/style.neo_noir.v1", http.StatusOK},
		{"/styles/style.neo_noir.v1", http.StatusNotFound},
		{"/styles/unknown-id", http.StatusNotFound},
	}

	for i, tt := range tests {
		rec := serve(sys, httptest.NewRequest("DELETE", tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("DELETE %s: status = %d, want %d", tt.path, rec.Code, tt.want)
		}
		if i > 0 {
			continue
		}
		var msg handlers.Message
		if err := json.NewDecoder(rec.Body).Decode(&msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if msg.Message != "Style deleted successfully" {
			t.Errorf("message = %q", msg.Message)
		}
	}
}

func TestHandlerValidate(t *testing.T) {
	reg := registry(t)

	tests := []struct {
		name      string
		body      string
		wantValid bool
		wantError string
	}{
		{"envelope with non-object", `{"style": 123}`, false, "type"},
		{"envelope with valid style", `{"style": ` + moodStyle + `}`, true, ""},
		{"raw document", moodStyle, true, ""},
		{"raw invalid document", `{"palette":{"contrast":"extreme"}}`, false, "/palette/contrast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{validateFn: reg.Validate}

			rec := serve(sys, httptest.NewRequest("POST", "/styles/validate", strings.NewReader(tt.body)))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}

			var res schema.Result
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if res.Valid != tt.wantValid {
				t.Errorf("valid = %v, want %v (errors %v)", res.Valid, tt.wantValid, res.Errors)
			}
			if res.Errors == nil {
				t.Error("errors should encode as an array")
			}
			if tt.wantError != "" && (len(res.Errors) == 0 || !strings.Contains(res.Errors[0], tt.wantError)) {
				t.Errorf("errors = %v, want mention of %q", res.Errors, tt.wantError)
			}
		})
	}
}
