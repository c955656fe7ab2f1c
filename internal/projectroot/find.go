package projectroot

import (
	"fmt"
	"os"
	"path/filepath"
)

// Find walks up from start until it hits a directory containing
// .git and returns its absolute path. Worktrees keep .git as a
// file, so any entry named .git counts.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no git repository found above %s", start)
		}
		dir = parent
	}
}
