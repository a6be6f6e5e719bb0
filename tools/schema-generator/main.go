// Command schema-generator regenerates the embedded docnav.yml schema from
// the Go types. The logging section is reflected from logging.Config and
// inlined under the "logging" property.
package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/logging"
	"github.com/invopop/jsonschema"
)

const outputPath = "schema/docnav.embedded.schema.json"

func main() {
	base, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(base, &schema); err != nil {
		log.Fatalf("Error parsing generated schema: %v", err)
	}

	properties, ok := schema["properties"].(map[string]interface{})
	if !ok {
		log.Fatalf("Generated schema has no properties")
	}
	loggingSchema, err := reflectLogging()
	if err != nil {
		log.Fatalf("Error generating logging schema: %v", err)
	}
	properties["logging"] = loggingSchema

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}
	if err := os.WriteFile(outputPath, append(data, '\n'), 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated schema at %s", outputPath)
}

// reflectLogging returns the logging section schema with every definition
// inlined, so it can be nested without dangling $refs.
func reflectLogging() (map[string]interface{}, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		ExpandedStruct:             true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "yaml",
	}

	s := r.Reflect(&logging.Config{})
	s.Version = ""
	s.Description = "Logging settings for every docnav command."

	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
