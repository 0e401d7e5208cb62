package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hoaproject/Bench/internal/derrors"
)

const sampleConfig = `# yaml-language-server: $schema=https://github.com/hoaproject/Bench/schema.json
# bench configuration file

# Report width in columns
width: 80

# Report format: text, color, table, json, yaml or template
format: text

# Reports only keep the marks accepted by every filter
filters:
  - exclude: "__*"
  # - min_percent: 5
  # - any:
  #     - match: "test*"
  #     - min_elapsed: 500ms

# Steps run in order, each one timed under a mark named after it
steps:
  - name: hello
    run: echo hello
  # A paused mark is resumed by the next step with the same name
  # - name: build
  #   run: go build ./...
  #   pause_after: true
`

// Init creates a sample .bench.yml in dir, the current directory when empty
func Init(dir string) error {
	if dir == "" {
		currentDir, err := os.Getwd()
		if err != nil {
			return derrors.NewExecutionError("init", "failed to get current directory", err)
		}
		dir = currentDir
	}
	configPath := filepath.Join(dir, ".bench.yml")

	if _, err := os.Stat(configPath); err == nil {
		return derrors.NewConfigurationError(configPath, fmt.Sprintf("config file already exists: %s", configPath), nil)
	}

	if err := os.WriteFile(configPath, []byte(sampleConfig), 0644); err != nil {
		return derrors.NewConfigurationError(configPath, "failed to create config file", err)
	}

	fmt.Printf("Created sample config: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Replace the sample steps with the commands to time")
	fmt.Println("  2. Run 'bench validate' to check the file")
	fmt.Println("  3. Run 'bench run' to time the steps")
	return nil
}
