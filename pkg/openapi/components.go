package openapi

import "maps"

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}

// NewComponents creates Components with shared schemas and error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error":  {Type: "string", Description: "Error message"},
					"errors": {Type: "array", Items: &Schema{Type: "string"}, Description: "Violation details"},
				},
				Required: []string{"error"},
			},
			"Message": {
				Type: "object",
				Properties: map[string]*Schema{
					"message": {Type: "string", Description: "Outcome of the operation"},
				},
				Required: []string{"message"},
			},
			"Window": {
				Type: "object",
				Properties: map[string]*Schema{
					"skip":  {Type: "integer", Description: "Records to skip", Example: 0},
					"limit": {Type: "integer", Description: "Maximum records returned", Example: 50},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":       errorResponse("Invalid request"),
			"NotFound":         errorResponse("Resource not found"),
			"Conflict":         errorResponse("Resource conflict (duplicate identifier)"),
			"ValidationFailed": errorResponse("Document failed validation"),
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
