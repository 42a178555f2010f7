package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/promptiverse/pkg/handlers"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		data       any
		wantStatus int
	}{
		{
			name:       "200 with map",
			status:     http.StatusOK,
			data:       map[string]string{"key": "value"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "201 with struct",
			status:     http.StatusCreated,
			data:       struct{ ID int }{ID: 42},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.RespondJSON(rec, tt.status, tt.data)

			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatus {
				t.Errorf("status: got %d, want %d", res.StatusCode, tt.wantStatus)
			}
			if ct := res.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("content-type: got %s", ct)
			}

			body, _ := io.ReadAll(res.Body)
			var parsed map[string]any
			if err := json.Unmarshal(body, &parsed); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	handlers.RespondError(rec, discard(), http.StatusBadRequest, errors.New("invalid input"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}

	var parsed map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if parsed["error"] != "invalid input" {
		t.Errorf("error: got %v, want invalid input", parsed["error"])
	}
	if _, ok := parsed["errors"]; ok {
		t.Error("errors field should be omitted without details")
	}
}

func TestRespondErrors(t *testing.T) {
	rec := httptest.NewRecorder()

	handlers.RespondErrors(
		rec, discard(),
		http.StatusUnprocessableEntity,
		errors.New("style validation failed"),
		[]string{"/palette/mode: enum: bad"},
	)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d, want 422", rec.Code)
	}

	var body handlers.ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Errors) != 1 || body.Errors[0] != "/palette/mode: enum: bad" {
		t.Errorf("errors = %v", body.Errors)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("decodes body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"noir"}`))
		var p payload
		if err := handlers.DecodeJSON(httptest.NewRecorder(), req, 1024, &p); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if p.Name != "noir" {
			t.Errorf("name = %q", p.Name)
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))
		var p payload
		if err := handlers.DecodeJSON(httptest.NewRecorder(), req, 1024, &p); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("rejects oversized body", func(t *testing.T) {
		body := `{"name":"` + strings.Repeat("x", 64) + `"}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		var p payload
		err := handlers.DecodeJSON(httptest.NewRecorder(), req, 16, &p)
		if err == nil || !strings.Contains(err.Error(), "exceeds") {
			t.Errorf("err = %v, want size error", err)
		}
	})
}
