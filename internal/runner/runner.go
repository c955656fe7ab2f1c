package runner

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("package", "runner")

// Runner executes gates sequentially and records their results.
type Runner struct {
	gates []Gate
	store *StateStore
	deps  *Deps
}

// NewRunner creates a runner over the given gates.
func NewRunner(gates []Gate, store *StateStore, deps *Deps) *Runner {
	return &Runner{gates: gates, store: store, deps: deps}
}

// RunAll executes every gate in order. Execution continues past
// failures so the operator sees all problems at once; the returned
// error is non-nil if ANY gate failed.
func (r *Runner) RunAll(ctx context.Context) error {
	return r.execute(ctx, r.gates)
}

// RunFailed re-runs only the gates that failed in the last run.
// A clean previous run is a no-op.
func (r *Runner) RunFailed(ctx context.Context) error {
	failed, err := r.store.FailedGates()
	if err != nil {
		return fmt.Errorf("loading failed gates: %w", err)
	}
	if len(failed) == 0 {
		return nil
	}

	var toRun []Gate
	for _, id := range failed {
		if g := r.find(id); g != nil {
			toRun = append(toRun, g)
		}
	}
	return r.execute(ctx, toRun)
}

// RunList executes a specific list of gate IDs.
func (r *Runner) RunList(ctx context.Context, gateIDs []string) error {
	var toRun []Gate
	for _, id := range gateIDs {
		g := r.find(id)
		if g == nil {
			return fmt.Errorf("gate not found: %s", id)
		}
		toRun = append(toRun, g)
	}
	return r.execute(ctx, toRun)
}

func (r *Runner) find(id string) Gate {
	for _, g := range r.gates {
		if g.ID() == id {
			return g
		}
	}
	return nil
}

func (r *Runner) execute(ctx context.Context, gates []Gate) error {
	var failed []string
	var gateIDs []string

	for _, gate := range gates {
		id := gate.ID()
		gateIDs = append(gateIDs, id)

		fmt.Println("")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Printf("GATE: %s\n", id)
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Println("")

		start := time.Now()
		res := gate.Run(ctx, r.deps)
		logger.WithFields(log.Fields{
			"gate":     id,
			"status":   res.Status,
			"duration": time.Since(start).Round(time.Millisecond),
		}).Debug("gate finished")

		if err := r.store.WriteResult(res); err != nil {
			return fmt.Errorf("writing result for %s: %w", id, err)
		}

		switch res.Status {
		case StatusSkip:
			fmt.Printf("SKIP: %s\n", id)
		case StatusPass:
			fmt.Printf("PASS: %s\n", id)
		default:
			failed = append(failed, id)
			fmt.Printf("FAIL: %s (exit %d)\n", id, res.ExitCode)
		}
		if res.Note != "" {
			fmt.Println(res.Note)
		}
	}

	lastRun := LastRun{
		Status: "pass",
		Gates:  gateIDs,
		Failed: failed,
	}
	if len(failed) > 0 {
		lastRun.Status = "fail"
	}

	if err := r.store.WriteLastRun(lastRun); err != nil {
		return fmt.Errorf("writing last run: %w", err)
	}

	if len(failed) > 0 {
		return fmt.Errorf("run failed: %v", failed)
	}
	return nil
}
