package cli

import (
	"fmt"
	"os"

	"github.com/hoaproject/Bench/internal/config"
	"github.com/hoaproject/Bench/internal/filter"
)

// Validate validates a bench configuration file
func Validate(configPath string) error {
	configPath, err := findConfig(configPath)
	if err != nil {
		return err
	}
	if configPath == "" {
		return fmt.Errorf("no config file found in current directory")
	}

	fmt.Printf("Validating: %s\n\n", configPath)

	content, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := config.ValidateWithSchema(configPath, content)
	if err != nil {
		return err
	}

	// Semantic checks need a config that matches the schema
	if result.Valid {
		cfg, err := config.Parse(configPath, content)
		if err != nil {
			return err
		}
		result.Merge(config.Validate(cfg))
		if _, err := filter.ParseAll(cfg.Filters); err != nil {
			result.Merge(&config.ValidationResult{
				Errors: []config.ValidationError{{Field: "filters", Message: err.Error()}},
			})
		}
	}

	if result.Valid {
		fmt.Println("✅ Configuration is valid!")
		return nil
	}

	fmt.Println("❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		fmt.Printf("%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Printf("\nFound %d error(s)\n", len(result.Errors))
	return fmt.Errorf("validation failed")
}
