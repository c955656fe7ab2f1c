package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)

	assert.Equal(t, "pylint", cfg.Lint.Tool)
	assert.True(t, cfg.Lint.ExitZero)
	assert.Equal(t, []string{".py"}, cfg.Lint.Extensions)
	assert.Equal(t, "Merge ", cfg.Commits.MergePrefix)
	assert.Contains(t, cfg.Commits.Tags, "FIX")
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
commits:
  ticket_pattern: "JIRA-[0-9]+"
  tags: [FEAT, FIX]
lint:
  tool: golangci-lint
  args: [run]
  extensions: [".go"]
  exit_zero: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "JIRA-[0-9]+", cfg.Commits.TicketPattern)
	assert.Equal(t, []string{"FEAT", "FIX"}, cfg.Commits.Tags)
	assert.Equal(t, "golangci-lint", cfg.Lint.Tool)
	assert.False(t, cfg.Lint.ExitZero)

	// Untouched sections keep their defaults.
	assert.Equal(t, "Merge ", cfg.Commits.MergePrefix)
}

func TestLoadPartialOverrideKeepsExitZero(t *testing.T) {
	// exit_zero is on by default and an override that does not
	// mention it must not switch it off.
	path := writeConfig(t, `
lint:
  tool: ruff
  args: [check]
  extensions: [".py"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ruff", cfg.Lint.Tool)
	assert.True(t, cfg.Lint.ExitZero)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "commits: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidPolicy(t *testing.T) {
	path := writeConfig(t, `
commits:
  ticket_pattern: "[A-Z"
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsEmptyTool(t *testing.T) {
	path := writeConfig(t, `
lint:
  tool: ""
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestPolicyFromConfig(t *testing.T) {
	cfg := Default()
	p, err := cfg.Policy()
	require.NoError(t, err)

	assert.True(t, p.Accepts("PROJ-123 [FIX] correct off-by-one"))
	assert.False(t, p.Accepts("fix bug"))
}
