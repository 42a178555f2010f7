package styles

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptiverse/pkg/handlers"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
	"github.com/JaimeStill/promptiverse/pkg/routes"
)

// Handler provides HTTP endpoints for style profile operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	pagination  pagination.Config
	maxBodySize int64
}

// NewHandler creates a style profile HTTP handler.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger,
		pagination:  pagination,
		maxBodySize: maxBodySize,
	}
}

// SearchRequest is the body of POST /styles/search.
type SearchRequest struct {
	Filters
	pagination.Window
}

// Routes returns the route group for style profile endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/styles",
		Tags:        []string{"Styles"},
		Description: "Schema-validated image style profiles",
		Schemas:     schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: spec.Create},
			{Method: "POST", Pattern: "/search", Handler: h.Search, OpenAPI: spec.Search},
			{Method: "POST", Pattern: "/validate", Handler: h.Validate, OpenAPI: spec.Validate},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: spec.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: spec.Delete},
		},
	}
}

// List returns style profiles filtered by query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	window := pagination.WindowFromQuery(values, h.pagination)
	filters := FiltersFromQuery(values)

	profiles, err := h.sys.List(r.Context(), filters, window)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profiles)
}

// Search returns style profiles matching filters in the JSON request body.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.Tags = cleanTags(req.Tags)
	profiles, err := h.sys.List(r.Context(), req.Filters, req.Window)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profiles)
}

// Find returns the style profile addressed by slug or native id.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	p, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Create validates and stores a new style profile.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Update validates and replaces the style profile addressed by slug or native id.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd UpdateCommand
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.sys.Update(r.Context(), r.PathValue("id"), cmd)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Delete removes the style profile addressed by slug or native id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondMessage(w, "Style deleted successfully")
}

// Validate checks a style document against the schema without storing it.
// The body is either the document itself or an envelope {"style": <document>}.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.sys.Validate(unwrapStyle(body)))
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		handlers.RespondErrors(w, h.logger, http.StatusUnprocessableEntity, err, ve.Violations)
		return
	}
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}

// unwrapStyle returns the value of the style key when body is an object
// whose only key is style, and body unchanged otherwise.
func unwrapStyle(body json.RawMessage) json.RawMessage {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return body
	}
	if style, ok := envelope["style"]; ok && len(envelope) == 1 {
		return style
	}
	return body
}
