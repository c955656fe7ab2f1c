package scanner

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"sync"
)

// Scanner lists the repository's tracked files for gate targeting.
// It asks git so .gitignore is respected for free.
type Scanner struct {
	repoRoot string

	mu      sync.Mutex
	tracked []string
}

// New creates a Scanner rooted at repoRoot.
func New(repoRoot string) *Scanner {
	return &Scanner{repoRoot: repoRoot}
}

// Tracked returns all tracked files, relative to the repo root.
// The result is cached for the Scanner's lifetime.
func (s *Scanner) Tracked(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracked != nil {
		return s.tracked, nil
	}

	// -z avoids quoting surprises in paths.
	cmd := exec.CommandContext(ctx, "git", "ls-files", "-z")
	cmd.Dir = s.repoRoot
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git ls-files failed: %w", err)
	}

	raw := strings.TrimSuffix(string(out), "\x00")
	if raw == "" {
		s.tracked = []string{}
		return s.tracked, nil
	}

	s.tracked = strings.Split(raw, "\x00")
	return s.tracked, nil
}

// SourceFiles returns tracked files matching one of the extensions,
// with excluded directory segments removed, sorted.
func (s *Scanner) SourceFiles(ctx context.Context, extensions, excludeDirs []string) ([]string, error) {
	all, err := s.Tracked(ctx)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, path := range all {
		if excludedDir(path, excludeDirs) {
			continue
		}
		if !hasExtension(path, extensions) {
			continue
		}
		files = append(files, path)
	}

	sort.Strings(files)
	return files, nil
}

// excludedDir is segment-aware: "vendor" excludes "vendor/x" and
// "pkg/vendor/x" but not "vendored/x".
func excludedDir(path string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	for _, part := range strings.Split(path, "/") {
		for _, exclude := range excludes {
			if part == exclude {
				return true
			}
		}
	}
	return false
}

func hasExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
