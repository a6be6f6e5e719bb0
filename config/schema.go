package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for docnav.yml by reflecting the
// Config struct. Site sections reject unknown keys; the top level allows
// them so extension sections such as "logging" pass through.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		// Expand struct references instead of using $ref for the root.
		ExpandedStruct: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "docnav configuration"
	schema.Description = "Site navigation sidebar and build settings for docnav."
	schema.AdditionalProperties = jsonschema.TrueSchema

	return json.MarshalIndent(schema, "", "  ")
}
