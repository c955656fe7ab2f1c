package gitlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	log "github.com/sirupsen/logrus"

	"github.com/bartekus/prgate/internal/commitmsg"
)

var logger = log.WithField("package", "gitlog")

// ErrShallowClone indicates the repository has truncated history.
// Commit validation needs every commit of the range, so a shallow
// clone must fail loudly instead of checking a partial list.
var ErrShallowClone = errors.New("shallow clone detected: full history is required (fetch with depth 0)")

// Source enumerates the commits that are reachable from Head but
// not from Base, i.e. the commits a pull request would add.
type Source struct {
	RepoPath string
	Base     string
	Head     string
}

// Commits walks base..head and returns the commits in traversal
// order. Merge commits are included; their multiple parents mean
// every path must be followed to find all feature commits.
func (s Source) Commits(ctx context.Context) ([]commitmsg.Commit, error) {
	if err := checkFullHistory(s.RepoPath); err != nil {
		return nil, err
	}

	repo, err := git.PlainOpen(s.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository %s: %w", s.RepoPath, err)
	}

	baseHash, err := resolve(repo, s.Base)
	if err != nil {
		return nil, fmt.Errorf("resolving base %q: %w", s.Base, err)
	}
	headHash, err := resolve(repo, s.Head)
	if err != nil {
		return nil, fmt.Errorf("resolving head %q: %w", s.Head, err)
	}

	logger.WithFields(log.Fields{
		"base": baseHash.String(),
		"head": headHash.String(),
	}).Debug("walking commit range")

	reachable, err := reachableFrom(repo, *baseHash)
	if err != nil {
		return nil, err
	}

	headIter, err := repo.Log(&git.LogOptions{From: *headHash})
	if err != nil {
		return nil, fmt.Errorf("walking head history: %w", err)
	}

	var commits []commitmsg.Commit
	seen := make(map[plumbing.Hash]bool)
	err = headIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if seen[c.Hash] || reachable[c.Hash] {
			return nil
		}
		seen[c.Hash] = true
		commits = append(commits, commitmsg.Commit{
			Hash:    c.Hash.String()[:7],
			Message: c.Message,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return commits, nil
}

// resolve tries the revision as given, then under origin. Lets
// callers say "main" whether or not the ref is remote-tracking.
func resolve(repo *git.Repository, rev string) (*plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err == nil {
		return hash, nil
	}
	return repo.ResolveRevision(plumbing.Revision("refs/remotes/origin/" + rev))
}

func reachableFrom(repo *git.Repository, from plumbing.Hash) (map[plumbing.Hash]bool, error) {
	iter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("walking base history: %w", err)
	}
	reachable := make(map[plumbing.Hash]bool)
	err = iter.ForEach(func(c *object.Commit) error {
		reachable[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reachable, nil
}

// checkFullHistory stats .git/shallow. go-git can read shallow
// repositories, but the resulting range would be incomplete.
func checkFullHistory(repoPath string) error {
	gitDir := filepath.Join(repoPath, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		// Worktree or bare layout; leave shallow detection to the
		// history walk itself.
		return nil
	}
	if _, err := os.Stat(filepath.Join(gitDir, "shallow")); err == nil {
		return ErrShallowClone
	}
	return nil
}
