package styles

import "github.com/JaimeStill/promptiverse/pkg/openapi"

type specs struct {
	List     *openapi.Operation
	Search   *openapi.Operation
	Find     *openapi.Operation
	Create   *openapi.Operation
	Update   *openapi.Operation
	Delete   *openapi.Operation
	Validate *openapi.Operation
}

var idParam = openapi.PathParam("id", "Style profile slug or store-generated id")

var spec = specs{
	List: &openapi.Operation{
		Summary:     "List style profiles",
		Description: "Case-insensitive name search, any-of tag match, skip/limit window ordered by name.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("search", "string", "Substring of the profile name", false),
			openapi.ArrayQueryParam("tags", "Match profiles carrying any of these tags"),
			openapi.QueryParam("skip", "integer", "Records to skip", false),
			openapi.QueryParam("limit", "integer", "Maximum records returned (default 50)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Style profiles", "StyleProfile"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search style profiles",
		RequestBody: openapi.RequestBodyJSON("StyleSearch", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Style profiles", "StyleProfile"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get style profile",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Style profile", "StyleProfile"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create style profile",
		Description: "The style payload is validated against the style schema before it is stored.",
		RequestBody: openapi.RequestBodyJSON("StyleProfileCreate", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Created style profile", "StyleProfile"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
			422: openapi.ResponseRef("ValidationFailed"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Replace style profile",
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("StyleProfileUpdate", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated style profile", "StyleProfile"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("ValidationFailed"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete style profile",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Style profile deleted", "Message"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Validate: &openapi.Operation{
		Summary:     "Validate style document",
		Description: "Accepts the style document itself or {\"style\": <document>}. Nothing is stored.",
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"application/json": {Schema: &openapi.Schema{}},
			},
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Validation result", "ValidationResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}

var freeform = &openapi.Schema{Type: "object", AdditionalProperties: true}

var stringList = &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}

var schemas = map[string]*openapi.Schema{
	"StyleProfile": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":             {Type: "string", Example: "style.neo_noir.v1"},
			"schema_version": {Type: "string", Example: "1.0.0"},
			"name":           {Type: "string"},
			"description":    {Type: "string"},
			"tags":           stringList,
			"style":          freeform,
			"intent":         freeform,
			"negative":       freeform,
			"usage_count":    {Type: "integer"},
			"is_template":    {Type: "boolean"},
			"created_at":     {Type: "string", Format: "date-time"},
			"updated_at":     {Type: "string", Format: "date-time"},
		},
	},
	"StyleProfileCreate": {
		Type:     "object",
		Required: []string{"name", "style"},
		Properties: map[string]*openapi.Schema{
			"id":          {Type: "string", Description: "Optional slug; generated when omitted"},
			"name":        {Type: "string"},
			"description": {Type: "string"},
			"tags":        stringList,
			"style":       freeform,
			"intent":      freeform,
			"negative":    freeform,
			"is_template": {Type: "boolean"},
		},
	},
	"StyleProfileUpdate": {
		Type:     "object",
		Required: []string{"name", "style"},
		Properties: map[string]*openapi.Schema{
			"name":        {Type: "string"},
			"description": {Type: "string"},
			"tags":        stringList,
			"style":       freeform,
			"intent":      freeform,
			"negative":    freeform,
			"is_template": {Type: "boolean"},
		},
	},
	"StyleSearch": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"search": {Type: "string"},
			"tags":   stringList,
			"skip":   {Type: "integer"},
			"limit":  {Type: "integer"},
		},
	},
	"ValidationResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"valid":  {Type: "boolean"},
			"errors": stringList,
		},
	},
}
