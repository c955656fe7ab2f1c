package runner

// Status represents the outcome of a gate execution.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Result is the outcome of one gate run.
// Matches the .prgate/run/gates/<gate>.json schema.
type Result struct {
	Gate     string `json:"gate"`
	Status   Status `json:"status"`
	ExitCode int    `json:"exit_code"`
	Note     string `json:"note,omitempty"`
}

// LastRun summarizes the most recent execution.
// Matches the .prgate/run/last-run.json schema.
type LastRun struct {
	Status string   `json:"status"` // "pass" or "fail"
	Gates  []string `json:"gates"`  // Ordered list of gates run
	Failed []string `json:"failed"` // Gates that failed
}
