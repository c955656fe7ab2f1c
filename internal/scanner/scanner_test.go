package scanner

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFilesFiltering(t *testing.T) {
	tests := []struct {
		name       string
		paths      []string
		extensions []string
		excludes   []string
		expected   []string
	}{
		{
			name:       "extension filter",
			paths:      []string{"a.py", "b.md", "sub/c.py"},
			extensions: []string{".py"},
			expected:   []string{"a.py", "sub/c.py"},
		},
		{
			name:       "exclude nested vendor",
			paths:      []string{"vendor/a.py", "pkg/vendor/b.py", "pkg/c.py"},
			extensions: []string{".py"},
			excludes:   []string{"vendor"},
			expected:   []string{"pkg/c.py"},
		},
		{
			name:       "segment matching only",
			paths:      []string{"vendored/a.py", "myvendor/b.py"},
			extensions: []string{".py"},
			excludes:   []string{"vendor"},
			expected:   []string{"myvendor/b.py", "vendored/a.py"},
		},
		{
			name:     "no extensions means everything",
			paths:    []string{"b.md", "a.py"},
			expected: []string{"a.py", "b.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scanner{tracked: tt.paths}
			got, err := s.SourceFiles(context.Background(), tt.extensions, tt.excludes)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScannerTracked(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	createFile(t, dir, "main.py", "")
	createFile(t, dir, "pkg/util.py", "")
	createFile(t, dir, ".gitignore", "ignored.py\n")
	createFile(t, dir, "ignored.py", "")
	createFile(t, dir, "notes.md", "")

	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "PROJ-1 [ADD] seed files")

	s := New(dir)

	tracked, err := s.Tracked(ctx)
	require.NoError(t, err)
	assert.Contains(t, tracked, "main.py")
	assert.NotContains(t, tracked, "ignored.py")

	py, err := s.SourceFiles(ctx, []string{".py"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.py", "pkg/util.py"}, py)
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}

func createFile(t *testing.T, dir, path, content string) {
	t.Helper()
	full := filepath.Join(dir, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}
