package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/promptiverse/pkg/module"
)

func echoPath(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.URL.Path))
}

func TestNewPanicsOnInvalidPrefix(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) did not panic", prefix)
				}
			}()
			module.New(prefix, http.HandlerFunc(echoPath))
		})
	}
}

func TestRouter(t *testing.T) {
	router := module.NewRouter()
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	api := module.New("/api", http.HandlerFunc(echoPath))
	var hits int
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			next.ServeHTTP(w, r)
		})
	})
	router.Mount(api)

	tests := []struct {
		path string
		want string
	}{
		{"/api/styles", "/styles"},
		{"/api/styles/", "/styles"},
		{"/api/styles/style.neo_noir.v1", "/styles/style.neo_noir.v1"},
		{"/api", "/"},
		{"/healthz", "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}

	if hits != 4 {
		t.Errorf("module middleware ran %d times, want 4", hits)
	}
}

func TestPrefixes(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/docs", http.HandlerFunc(echoPath)))
	router.Mount(module.New("/api", http.HandlerFunc(echoPath)))

	got := router.Prefixes()
	if len(got) != 2 || got[0] != "/api" || got[1] != "/docs" {
		t.Errorf("prefixes = %v", got)
	}
}

func TestUseAfterServePanics(t *testing.T) {
	m := module.New("/api", http.HandlerFunc(echoPath))
	m.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/x", nil))

	defer func() {
		if recover() == nil {
			t.Error("Use after Serve did not panic")
		}
	}()
	m.Use(func(next http.Handler) http.Handler { return next })
}
