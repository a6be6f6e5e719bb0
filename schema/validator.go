// Package schema validates docnav configuration documents against the
// embedded JSON Schema.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed docnav.embedded.schema.json
var embeddedSchemaData []byte

// Validator validates configuration against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

var (
	compiled    *jsonschema.Schema
	compileErr  error
	compileOnce sync.Once
)

// Schema returns the raw embedded schema document.
func Schema() []byte {
	return embeddedSchemaData
}

// NewValidator creates a new schema validator, loading the embedded schema.
// The schema is compiled once per process.
func NewValidator() (*Validator, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("docnav.json", strings.NewReader(string(embeddedSchemaData))); err != nil {
			compileErr = fmt.Errorf("failed to add embedded schema resource: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("docnav.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile embedded schema: %w", compileErr)
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	return &Validator{schema: compiled}, nil
}

// Validate validates configuration data against the schema.
// It expects configData to be anything that can be marshaled to JSON.
func (v *Validator) Validate(configData interface{}) error {
	// Round-trip through JSON so YAML and TOML numbers and maps arrive as
	// plain JSON values.
	jsonData, err := json.Marshal(configData)
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON for validation: %w", err)
	}

	var dataToValidate interface{}
	if err := json.Unmarshal(jsonData, &dataToValidate); err != nil {
		return fmt.Errorf("failed to unmarshal JSON for validation: %w", err)
	}

	if err := v.schema.Validate(dataToValidate); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			var errorMessages []string
			collectErrors(validationErr, &errorMessages)
			return fmt.Errorf("schema validation failed:\n%s", strings.Join(errorMessages, "\n"))
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// collectErrors recursively collects all validation errors into a slice
func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if err.InstanceLocation != "" {
		*messages = append(*messages, fmt.Sprintf("- %s: %s", err.InstanceLocation, err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
