package gates

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/prgate/internal/commitmsg"
	"github.com/bartekus/prgate/internal/config"
	"github.com/bartekus/prgate/internal/runner"
)

// fakeSource implements runner.CommitSource.
type fakeSource struct {
	commits []commitmsg.Commit
	err     error
}

func (f fakeSource) Commits(ctx context.Context) ([]commitmsg.Commit, error) {
	return f.commits, f.err
}

func commitDeps(src runner.CommitSource) *runner.Deps {
	return &runner.Deps{
		Config:  config.Default(),
		Commits: src,
	}
}

func TestCommitMessagesAllValid(t *testing.T) {
	gate := NewCommitMessages()
	res := gate.Run(context.Background(), commitDeps(fakeSource{commits: []commitmsg.Commit{
		{Hash: "a", Message: "PROJ-123 [FIX] correct off-by-one"},
		{Hash: "b", Message: "Merge branch 'main' into feature"},
	}}))

	assert.Equal(t, runner.StatusPass, res.Status)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Note, "2 commit(s) checked")
}

func TestCommitMessagesOneInvalid(t *testing.T) {
	gate := NewCommitMessages()
	res := gate.Run(context.Background(), commitDeps(fakeSource{commits: []commitmsg.Commit{
		{Hash: "good111", Message: "PROJ-123 [FIX] correct off-by-one"},
		{Hash: "bad2222", Message: "fix bug"},
	}}))

	require.Equal(t, runner.StatusFail, res.Status)
	assert.Equal(t, 1, res.ExitCode)

	// Exactly the one invalid message is reported.
	assert.Contains(t, res.Note, "bad2222: fix bug")
	assert.NotContains(t, res.Note, "good111")
}

func TestCommitMessagesEnumeratesAll(t *testing.T) {
	gate := NewCommitMessages()
	res := gate.Run(context.Background(), commitDeps(fakeSource{commits: []commitmsg.Commit{
		{Hash: "a", Message: "first bad"},
		{Hash: "b", Message: "second bad"},
	}}))

	require.Equal(t, runner.StatusFail, res.Status)
	assert.Contains(t, res.Note, "a: first bad")
	assert.Contains(t, res.Note, "b: second bad")
}

func TestCommitMessagesNoCommits(t *testing.T) {
	gate := NewCommitMessages()
	res := gate.Run(context.Background(), commitDeps(fakeSource{}))

	assert.Equal(t, runner.StatusPass, res.Status)
}

func TestCommitMessagesSourceError(t *testing.T) {
	gate := NewCommitMessages()
	res := gate.Run(context.Background(), commitDeps(fakeSource{err: errors.New("shallow clone")}))

	require.Equal(t, runner.StatusFail, res.Status)
	assert.Equal(t, 4, res.ExitCode)
	assert.Contains(t, res.Note, "shallow clone")
}

func TestCommitMessagesNoSource(t *testing.T) {
	gate := NewCommitMessages()
	res := gate.Run(context.Background(), commitDeps(nil))

	require.Equal(t, runner.StatusFail, res.Status)
	assert.Equal(t, 4, res.ExitCode)
}
