package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	t.Setenv("FERROLINT_CONFIG", "")
	path := writeDoc(t, "ferrolint.yaml", `
checkers:
  e1101:
    enabled: true
    max_complexity: 15
  e11:
    severity: high
`)

	doc, err := Load(path)
	require.NoError(t, err)
	require.Contains(t, doc.Checkers, "e1101")
	assert.Equal(t, true, doc.Checkers["e1101"]["enabled"])
	assert.Equal(t, 15, doc.Checkers["e1101"]["max_complexity"])
	assert.Equal(t, "high", doc.Checkers["e11"]["severity"])
}

func TestLoad_TOML(t *testing.T) {
	t.Setenv("FERROLINT_CONFIG", "")
	path := writeDoc(t, "ferrolint.toml", `
[checkers.e1101]
enabled = false
max_complexity = 12
`)

	doc, err := Load(path)
	require.NoError(t, err)
	require.Contains(t, doc.Checkers, "e1101")
	assert.Equal(t, false, doc.Checkers["e1101"]["enabled"])
	assert.Equal(t, int64(12), doc.Checkers["e1101"]["max_complexity"])
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("FERROLINT_CONFIG", "")
	doc, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, doc.Checkers)
}

func TestLoad_EnvOverride(t *testing.T) {
	override := writeDoc(t, "override.yaml", `
checkers:
  e1001:
    enabled: false
`)
	t.Setenv("FERROLINT_CONFIG", override)

	doc, err := Load("does-not-exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, false, doc.Checkers["e1001"]["enabled"])
}

func TestLoad_Malformed(t *testing.T) {
	t.Setenv("FERROLINT_CONFIG", "")
	path := writeDoc(t, "bad.yaml", "checkers: [not, a, map")
	_, err := Load(path)
	require.Error(t, err)
}
