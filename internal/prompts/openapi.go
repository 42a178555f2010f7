package prompts

import "github.com/JaimeStill/promptiverse/pkg/openapi"

type specs struct {
	List       *openapi.Operation
	ModalTypes *openapi.Operation
	Find       *openapi.Operation
	Create     *openapi.Operation
	Update     *openapi.Operation
	Delete     *openapi.Operation
	Search     *openapi.Operation
}

var idParam = openapi.UUIDPathParam("id", "Prompt UUID")

var spec = specs{
	List: &openapi.Operation{
		Summary:     "List prompts",
		Description: "Newest first, filtered by modal type, any-of tags and title search.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("modal_type", "string", "Exact modal type", false),
			openapi.QueryParam("search", "string", "Substring of the prompt title", false),
			openapi.ArrayQueryParam("tags", "Match prompts carrying any of these tags"),
			openapi.QueryParam("skip", "integer", "Records to skip", false),
			openapi.QueryParam("limit", "integer", "Maximum records returned (default 20)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Prompts", "Prompt"),
			422: openapi.ResponseRef("ValidationFailed"),
		},
	},
	ModalTypes: &openapi.Operation{
		Summary: "List modal types",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Modal types",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: modalType}},
				},
			},
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get prompt",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompt", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create prompt",
		RequestBody: openapi.RequestBodyJSON("PromptCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Created prompt", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			422: openapi.ResponseRef("ValidationFailed"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Replace prompt",
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("PromptCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated prompt", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("ValidationFailed"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete prompt",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompt deleted", "Message"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search prompts",
		RequestBody: openapi.RequestBodyJSON("PromptSearch", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Prompts", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			422: openapi.ResponseRef("ValidationFailed"),
		},
	},
}

var modalType = &openapi.Schema{
	Type: "string",
	Enum: []any{"text", "image", "video", "code", "audio", "other"},
}

var object = &openapi.Schema{Type: "object", AdditionalProperties: true}

var stringList = &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}

var schemas = map[string]*openapi.Schema{
	"Prompt": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":               {Type: "string", Format: "uuid"},
			"title":            {Type: "string"},
			"description":      {Type: "string"},
			"modal_type":       modalType,
			"content":          object,
			"style_profile_id": {Type: "string", Description: "Unchecked style profile reference"},
			"tags":             stringList,
			"metadata":         object,
			"created_at":       {Type: "string", Format: "date-time"},
			"updated_at":       {Type: "string", Format: "date-time"},
		},
	},
	"PromptCommand": {
		Type:     "object",
		Required: []string{"title", "modal_type", "content"},
		Properties: map[string]*openapi.Schema{
			"title":            {Type: "string"},
			"description":      {Type: "string"},
			"modal_type":       modalType,
			"content":          object,
			"style_profile_id": {Type: "string"},
			"tags":             stringList,
			"metadata":         object,
		},
	},
	"PromptSearch": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"modal_type": modalType,
			"search":     {Type: "string"},
			"tags":       stringList,
			"skip":       {Type: "integer"},
			"limit":      {Type: "integer"},
		},
	},
}
