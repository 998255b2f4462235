package config

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/search"
)

//go:embed problem_schema.json
var schemaBytes []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// loadSchema compiles the embedded schema once.
func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaBytes))
		if schemaErr != nil {
			schemaErr = search.NewConfigError("failed to compile embedded problem schema", schemaErr)
		}
	})
	return schema, schemaErr
}

// ValidateWithSchema checks a YAML problem document against the embedded JSON schema.
func ValidateWithSchema(document []byte) error {
	compiled, err := loadSchema()
	if err != nil {
		return err
	}

	// gojsonschema works on generic JSON-like values
	var data interface{}
	if err := yaml.Unmarshal(document, &data); err != nil {
		return search.NewConfigError("failed to parse problem YAML for schema validation", err)
	}

	result, err := compiled.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return search.NewConfigError("schema validation could not run", err)
	}
	if result.Valid() {
		return nil
	}
	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return search.NewConfigError("problem does not match schema:\n- "+strings.Join(messages, "\n- "), nil)
}
