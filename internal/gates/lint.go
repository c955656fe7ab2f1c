package gates

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bartekus/prgate/internal/runner"
)

// Lint runs the configured static analyzer over tracked source
// files. With exit_zero set (the default) findings are reported
// but never fail the gate.
type Lint struct {
	id string
}

func NewLint() runner.Gate {
	return &Lint{id: "lint:source"}
}

func (g *Lint) ID() string { return g.id }

func (g *Lint) Run(ctx context.Context, deps *runner.Deps) runner.Result {
	cfg := deps.Config.Lint

	if _, err := exec.LookPath(cfg.Tool); err != nil {
		return runner.Result{
			Gate:     g.id,
			Status:   runner.StatusFail,
			ExitCode: 2,
			Note:     fmt.Sprintf("%s not found on PATH", cfg.Tool),
		}
	}

	files, err := deps.Scanner.SourceFiles(ctx, cfg.Extensions, cfg.ExcludeDirs)
	if err != nil {
		return runner.Result{
			Gate:     g.id,
			Status:   runner.StatusFail,
			ExitCode: 4,
			Note:     fmt.Sprintf("Failed to list files: %v", err),
		}
	}

	if len(files) == 0 {
		return runner.Result{
			Gate:   g.id,
			Status: runner.StatusPass,
			Note:   "No files to lint",
		}
	}

	// Chunking to stay under ARG_MAX on large repositories.
	const batchSize = 200
	var findings []string
	hadFindings := false

	for i := 0; i < len(files); i += batchSize {
		end := min(i+batchSize, len(files))
		batch := files[i:end]

		args := append(append([]string(nil), cfg.Args...), batch...)
		cmd := exec.CommandContext(ctx, cfg.Tool, args...)
		cmd.Dir = deps.RepoRoot

		out, err := cmd.CombinedOutput()
		if text := strings.TrimSpace(string(out)); text != "" {
			findings = append(findings, text)
		}
		if err != nil {
			if _, ok := err.(*exec.ExitError); !ok {
				// Keep findings from earlier batches; the operator
				// should see everything collected before the failure.
				findings = append(findings, fmt.Sprintf("%s execution failed: %v", cfg.Tool, err))
				return runner.Result{
					Gate:     g.id,
					Status:   runner.StatusFail,
					ExitCode: 4,
					Note:     strings.Join(findings, "\n"),
				}
			}
			hadFindings = true
		}
	}

	note := strings.Join(findings, "\n")

	if hadFindings {
		if cfg.ExitZero {
			// The gate is advisory: findings are surfaced in the
			// log but the run succeeds.
			if note != "" {
				note += "\n"
			}
			note += "(exit-zero: findings reported, gate not enforced)"
			return runner.Result{
				Gate:   g.id,
				Status: runner.StatusPass,
				Note:   note,
			}
		}
		return runner.Result{
			Gate:     g.id,
			Status:   runner.StatusFail,
			ExitCode: 3,
			Note:     note,
		}
	}

	return runner.Result{
		Gate:   g.id,
		Status: runner.StatusPass,
		Note:   fmt.Sprintf("%d file(s) linted", len(files)),
	}
}
