package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(2, "Options")
	w.Table([]string{"Option", "Description"}, [][]string{{InlineCode("--output"), "auto|text|json"}})
	w.Table([]string{"Empty"}, nil)

	assert.Equal(t, "## Options\n\n| Option | Description |\n| --- | --- |\n| `--output` | auto\\|text\\|json |\n\n", string(w.Bytes()))
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Render SQL for the queries in a file", cleanDescription("Render SQL  for the\nqueries in a file."))
}

func TestCleanExample(t *testing.T) {
	assert.Equal(t, "# Render\nleapcube render q.yaml", cleanExample("  # Render\n  leapcube render q.yaml\n"))
}

func TestFlagEnvVar(t *testing.T) {
	assert.Equal(t, "`LEAPCUBE_MAX_DEPTH`", flagEnvVar("max-depth"))
	assert.Equal(t, "-", flagEnvVar("security"))
}

func TestGenerators(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, generateCLIDocs(dir))
	require.NoError(t, generateConfigDocs(dir))
	require.NoError(t, generateDialectDocs(dir))

	for _, name := range []string{"index.md", "render.md", "explain.md", "configuration.md", "dialects.md"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "DO NOT EDIT", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "dialects.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "`snowflake`")
	assert.Contains(t, string(data), "`APPROX_COUNT_DISTINCT`")
}
