package runner

import (
	"context"

	"github.com/bartekus/prgate/internal/commitmsg"
	"github.com/bartekus/prgate/internal/config"
	"github.com/bartekus/prgate/internal/scanner"
)

// CommitSource supplies the commits under validation, either from
// the local repository or from the hosting platform's API.
type CommitSource interface {
	Commits(ctx context.Context) ([]commitmsg.Commit, error)
}

// Deps contains dependencies injected into gates.
type Deps struct {
	RepoRoot string
	StateDir string
	Config   *config.Config
	Scanner  *scanner.Scanner
	Commits  CommitSource
}

// Gate is a single pass/fail check of a proposed change.
type Gate interface {
	// ID returns the unique identifier (e.g. "commits:format").
	ID() string

	// Run executes the gate.
	Run(ctx context.Context, deps *Deps) Result
}
