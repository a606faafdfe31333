// Package schema reflects JSON Schemas from tool input types.
package schema

import (
	"github.com/invopop/jsonschema"
)

// reflector inlines every definition: parameter schemas travel whole
// inside the system prompt and tool definitions, where a $ref has
// nothing to point at.
var reflector = &jsonschema.Reflector{
	DoNotReference: true,
}

// ForInput reflects the parameter schema for a tool input struct.
// Fields use json and jsonschema tags:
//
//	type SearchInput struct {
//	    Query string `json:"query" jsonschema:"required,description=The search query"`
//	    Limit int    `json:"limit,omitempty"`
//	}
//
//	params := schema.ForInput[SearchInput]()
func ForInput[In any]() *jsonschema.Schema {
	var zero In
	return reflector.Reflect(&zero)
}
