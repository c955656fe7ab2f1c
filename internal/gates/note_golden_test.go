package gates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bartekus/prgate/internal/commitmsg"
	"github.com/bartekus/prgate/internal/runner"
	"github.com/bartekus/prgate/internal/testutil/golden"
)

// The failure note is operator-facing CI log output; pin its shape.
func TestCommitMessagesFailureNote(t *testing.T) {
	gate := NewCommitMessages()
	res := gate.Run(context.Background(), commitDeps(fakeSource{commits: []commitmsg.Commit{
		{Hash: "good111", Message: "PROJ-123 [FIX] correct off-by-one"},
		{Hash: "bad2222", Message: "fix bug"},
		{Hash: "bad3333", Message: "proj-9 [FIX] lowercase project code"},
	}}))

	require.Equal(t, runner.StatusFail, res.Status)
	golden.Compare(t, "commit_messages_failure_note", res.Note)
}
