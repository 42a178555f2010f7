package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/promptiverse/pkg/openapi"
	"github.com/JaimeStill/promptiverse/pkg/routes"
)

func writeName(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name + ":" + r.PathValue("id")))
	}
}

func group() routes.Group {
	return routes.Group{
		Prefix: "/styles",
		Tags:   []string{"Styles"},
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "",
				Handler: writeName("list"),
				OpenAPI: &openapi.Operation{Summary: "List styles"},
			},
			{
				Method:  "GET",
				Pattern: "/{id}",
				Handler: writeName("find"),
				OpenAPI: &openapi.Operation{Summary: "Get style", Tags: []string{"Custom"}},
			},
			{Method: "DELETE", Pattern: "/{id}", Handler: writeName("delete")},
		},
		Children: []routes.Group{
			{
				Prefix: "/admin",
				Routes: []routes.Route{
					{
						Method:  "POST",
						Pattern: "/reindex",
						Handler: writeName("reindex"),
						OpenAPI: &openapi.Operation{Summary: "Reindex"},
					},
				},
			},
		},
		Schemas: map[string]*openapi.Schema{
			"StyleProfile": {Type: "object"},
		},
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, group())

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{"GET", "/styles", "list:"},
		{"GET", "/styles/style.neo_noir.v1", "find:style.neo_noir.v1"},
		{"DELETE", "/styles/abc", "delete:abc"},
		{"POST", "/styles/admin/reindex", "reindex:"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	routes.Describe(spec, "/api", group())

	list, ok := spec.Paths["/api/styles"]
	if !ok || list.Get == nil {
		t.Fatalf("missing GET /api/styles: %+v", spec.Paths)
	}
	if len(list.Get.Tags) != 1 || list.Get.Tags[0] != "Styles" {
		t.Errorf("list tags = %v, want group tags", list.Get.Tags)
	}

	find := spec.Paths["/api/styles/{id}"]
	if find == nil || find.Get == nil {
		t.Fatal("missing GET /api/styles/{id}")
	}
	if find.Get.Tags[0] != "Custom" {
		t.Errorf("find tags = %v, want operation tags kept", find.Get.Tags)
	}
	if find.Delete != nil {
		t.Error("routes without metadata should not be described")
	}

	child := spec.Paths["/api/styles/admin/reindex"]
	if child == nil || child.Post == nil {
		t.Fatal("missing child route")
	}
	if child.Post.Tags[0] != "Styles" {
		t.Errorf("child tags = %v, want inherited", child.Post.Tags)
	}

	if _, ok := spec.Components.Schemas["StyleProfile"]; !ok {
		t.Error("group schemas not merged")
	}
}
