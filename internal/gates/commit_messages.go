package gates

import (
	"context"
	"fmt"
	"strings"

	"github.com/bartekus/prgate/internal/runner"
)

// CommitMessages validates every pull-request commit message
// against the configured policy.
type CommitMessages struct {
	id string
}

func NewCommitMessages() runner.Gate {
	return &CommitMessages{id: "commits:format"}
}

func (g *CommitMessages) ID() string { return g.id }

func (g *CommitMessages) Run(ctx context.Context, deps *runner.Deps) runner.Result {
	if deps.Commits == nil {
		return runner.Result{
			Gate:     g.id,
			Status:   runner.StatusFail,
			ExitCode: 4,
			Note:     "no commit source configured",
		}
	}

	policy, err := deps.Config.Policy()
	if err != nil {
		return runner.Result{
			Gate:     g.id,
			Status:   runner.StatusFail,
			ExitCode: 4,
			Note:     fmt.Sprintf("invalid commit policy: %v", err),
		}
	}

	commits, err := deps.Commits.Commits(ctx)
	if err != nil {
		return runner.Result{
			Gate:     g.id,
			Status:   runner.StatusFail,
			ExitCode: 4,
			Note:     fmt.Sprintf("enumerating commits: %v", err),
		}
	}

	if len(commits) == 0 {
		return runner.Result{
			Gate:   g.id,
			Status: runner.StatusPass,
			Note:   "No commits to check",
		}
	}

	// Every offending message is reported, not just the first;
	// a contributor fixes the whole batch in one rebase.
	violations := policy.Check(commits)
	if len(violations) > 0 {
		var msg strings.Builder
		msg.WriteString("Invalid commit messages:\n")
		for _, v := range violations {
			msg.WriteString("  " + v.String() + "\n")
		}
		fmt.Fprintf(&msg, "\nExpected subject format: TICKET-123 [%s] description, or a %q prefix",
			strings.Join(deps.Config.Commits.Tags, "|"), deps.Config.Commits.MergePrefix)

		return runner.Result{
			Gate:     g.id,
			Status:   runner.StatusFail,
			ExitCode: 1,
			Note:     msg.String(),
		}
	}

	return runner.Result{
		Gate:   g.id,
		Status: runner.StatusPass,
		Note:   fmt.Sprintf("%d commit(s) checked", len(commits)),
	}
}
