package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for bench configuration
func GetSchemaJSON() string {
	return schemaJSON
}

// ValidateWithSchema validates config content against the JSON Schema
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{Valid: true, Errors: []ValidationError{}}

	var data interface{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			result.addError("syntax", fmt.Sprintf("Invalid YAML syntax: %v", err))
			return result, nil
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			result.addError("syntax", fmt.Sprintf("Invalid JSON syntax: %v", err))
			return result, nil
		}
	case ".toml":
		k, err := load(path, content)
		if err != nil {
			result.addError("syntax", fmt.Sprintf("Invalid TOML syntax: %v", err))
			return result, nil
		}
		data = k.Raw()
	default:
		return nil, fmt.Errorf("unsupported file format")
	}

	// An empty document is an empty config
	if data == nil {
		data = map[string]interface{}{}
	}

	validationResult, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(GetSchemaJSON()),
		gojsonschema.NewGoLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	for _, err := range validationResult.Errors() {
		result.addError(err.Field(), err.Description())
	}

	return result, nil
}
