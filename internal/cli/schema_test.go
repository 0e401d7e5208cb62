package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_PrintToStdout(t *testing.T) {
	require.NoError(t, Schema(""))
}

func TestSchema_WriteToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "bench-schema.json")
	require.NoError(t, Schema(outputFile))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	schemaStr := string(content)
	assert.Contains(t, schemaStr, `"$schema": "http://json-schema.org/draft-07/schema#"`)
	assert.Contains(t, schemaStr, `"steps"`)
	assert.Contains(t, schemaStr, `"filters"`)
}

func TestSchema_InvalidPath(t *testing.T) {
	err := Schema(filepath.Join(t.TempDir(), "missing", "schema.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write schema")
}
