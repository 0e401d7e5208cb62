package cli

import (
	"fmt"
	"os"

	"github.com/hoaproject/Bench/internal/config"
)

// findConfig returns configPath or, when it is empty, the config file of the
// current directory. An empty result means no file was found.
func findConfig(configPath string) (string, error) {
	if configPath != "" {
		return configPath, nil
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return config.Find(currentDir), nil
}

// loadConfig loads the config at configPath, falling back to the defaults
// when no file exists
func loadConfig(configPath string) (*config.Config, string, error) {
	path, err := findConfig(configPath)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return config.Default(), "", nil
	}

	cfg, err := config.New().Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
