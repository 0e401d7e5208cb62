package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/hoaproject/Bench/internal/report"
	"github.com/hoaproject/Bench/pkg/bench"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Merge appends the errors of other
func (r *ValidationResult) Merge(other *ValidationResult) {
	for _, e := range other.Errors {
		r.addError(e.Field, e.Message)
	}
}

// Validate runs semantic checks that the schema cannot express
func Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{Valid: true, Errors: []ValidationError{}}

	if cfg.Width < 1 {
		result.addError("width", fmt.Sprintf("Width must be positive, got %d", cfg.Width))
	}

	if !report.Supported(cfg.Format) {
		result.addError("format", fmt.Sprintf("Unknown format '%s' (supported: %s)",
			cfg.Format, strings.Join(report.Formats(), ", ")))
	}

	if cfg.Format == string(report.Template) && strings.TrimSpace(cfg.Template) == "" {
		result.addError("template", "The template format requires a template")
	}

	for i, step := range cfg.Steps {
		field := fmt.Sprintf("steps/%d", i)
		if strings.TrimSpace(step.Name) == "" {
			result.addError(field, "Step name is empty")
		}
		if step.Name == bench.GlobalID {
			result.addError(field, fmt.Sprintf("Step name '%s' is a reserved mark name", bench.GlobalID))
		}
		if strings.TrimSpace(step.Run) == "" {
			result.addError(field, fmt.Sprintf("Step '%s' has an empty command", step.Name))
		}
	}

	for i, spec := range cfg.Filters {
		validateFilter(result, fmt.Sprintf("filters/%d", i), spec)
	}

	return result
}

func validateFilter(result *ValidationResult, field string, spec FilterSpec) {
	for _, pattern := range []string{spec.Match, spec.Exclude} {
		if pattern == "" {
			continue
		}
		if _, err := path.Match(pattern, ""); err != nil {
			result.addError(field, fmt.Sprintf("Invalid pattern '%s': %v", pattern, err))
		}
	}

	if spec.MinPercent != nil && spec.MaxPercent != nil && *spec.MinPercent > *spec.MaxPercent {
		result.addError(field, "min_percent is greater than max_percent")
	}
	if spec.MinElapsed > 0 && spec.MaxElapsed > 0 && spec.MinElapsed > spec.MaxElapsed {
		result.addError(field, "min_elapsed is greater than max_elapsed")
	}

	for i, sub := range spec.All {
		validateFilter(result, fmt.Sprintf("%s/all/%d", field, i), sub)
	}
	for i, sub := range spec.Any {
		validateFilter(result, fmt.Sprintf("%s/any/%d", field, i), sub)
	}
	if spec.Not != nil {
		validateFilter(result, field+"/not", *spec.Not)
	}
}
