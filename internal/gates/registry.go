package gates

import "github.com/bartekus/prgate/internal/runner"

// Registry defines the canonical order of gates.
var Registry = []runner.Gate{
	NewCommitMessages(),
	NewLint(),
}
