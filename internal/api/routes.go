package api

import (
	"net/http"

	"github.com/JaimeStill/promptiverse/internal/config"
	"github.com/JaimeStill/promptiverse/pkg/openapi"
	"github.com/JaimeStill/promptiverse/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := []routes.Group{
		domain.Styles.Handler(runtime.MaxBodySize).Routes(),
		domain.Prompts.Handler(runtime.MaxBodySize).Routes(),
	}

	routes.Register(mux, groups...)

	spec, err := buildSpec(cfg, groups)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}

func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	servers := cfg.API.OpenAPI.Servers
	if len(servers) == 0 {
		servers = []string{cfg.API.BasePath}
	}
	for _, url := range servers {
		spec.AddServer(url)
	}

	routes.Describe(spec, "", groups...)
	return openapi.MarshalJSON(spec)
}
