package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignPrompt(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	out, err := r.Design(DesignData{
		Description:  "a library lending system",
		DatabaseType: "PostgreSQL",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "expert database architect")
	assert.Contains(t, out, "Application Description: a library lending system")
	assert.Contains(t, out, "Database Type: PostgreSQL")
	assert.Contains(t, out, "## ERD (Mermaid)")
	assert.Contains(t, out, "## SQL Queries")
	assert.Contains(t, out, "## Design Explanation")
	// MySQL-only engine hints must not leak into other dialects.
	assert.NotContains(t, out, "ENGINE=InnoDB")
}

func TestDesignPromptMySQLHints(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	out, err := r.Design(DesignData{
		Description:  "an online store",
		DatabaseType: "MySQL",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "INT AUTO_INCREMENT")
	assert.Contains(t, out, "ENGINE=InnoDB")
}

func TestValidatePrompt(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	out, err := r.Validate(ValidateData{
		Design:       "CREATE TABLE users (id INT);",
		Requirements: "store users and orders",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Requirements: store users and orders")
	assert.Contains(t, out, "Current Design: CREATE TABLE users (id INT);")
	assert.Contains(t, out, "Normalization")
}

func TestRendererOverrideDir(t *testing.T) {
	dir := t.TempDir()
	override := []byte("custom design prompt for {{.DatabaseType}}: {{.Description}}")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "design.tmpl"), override, 0o644))

	r, err := NewRenderer(dir)
	require.NoError(t, err)

	out, err := r.Design(DesignData{Description: "a blog", DatabaseType: "SQLite"})
	require.NoError(t, err)
	assert.Equal(t, "custom design prompt for SQLite: a blog", out)

	// The validate template was not overridden and keeps its embedded body.
	v, err := r.Validate(ValidateData{Design: "d", Requirements: "r"})
	require.NoError(t, err)
	assert.Contains(t, v, "Provide specific recommendations")
}

func TestRendererReloadPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "design.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("v1 {{.Description}}"), 0o644))

	r, err := NewRenderer(dir)
	require.NoError(t, err)

	out, err := r.Design(DesignData{Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, "v1 x", out)

	require.NoError(t, os.WriteFile(path, []byte("v2 {{.Description}}"), 0o644))
	require.NoError(t, r.Reload())

	out, err = r.Design(DesignData{Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, "v2 x", out)
}
