package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bartekus/prgate/cmd/prgate/internal/clierr"
	"github.com/bartekus/prgate/internal/config"
	"github.com/bartekus/prgate/internal/gates"
	"github.com/bartekus/prgate/internal/github"
	"github.com/bartekus/prgate/internal/gitlog"
	"github.com/bartekus/prgate/internal/projectroot"
	"github.com/bartekus/prgate/internal/runner"
	"github.com/bartekus/prgate/internal/scanner"
)

type checkOptions struct {
	json       bool
	stateDir   string
	configPath string

	base string
	head string

	ghRepo string
	ghPR   int
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [gate...]",
		Short: "Run pull-request gates",
		Long: `Run the configured gates against the current repository.
With no arguments every gate runs; gate IDs select a subset.
State is kept in .prgate/run so failed gates can be retried.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.setupRunner()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				err = r.RunAll(cmd.Context())
			} else {
				err = r.RunList(cmd.Context(), args)
			}
			if err != nil {
				return clierr.Wrap(1, "check failed", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Output results in JSON")
	cmd.PersistentFlags().StringVar(&opts.stateDir, "state-dir", ".prgate/run", "Directory to store run state")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to policy config (default <repo>/.prgate.yml)")
	cmd.Flags().StringVar(&opts.base, "base", "origin/main", "Base revision of the commit range")
	cmd.Flags().StringVar(&opts.head, "head", "HEAD", "Head revision of the commit range")
	cmd.Flags().StringVar(&opts.ghRepo, "gh-repo", "", "GitHub repository (owner/repo) to enumerate commits via the API")
	cmd.Flags().IntVar(&opts.ghPR, "gh-pr", 0, "GitHub pull request number (requires --gh-repo)")

	cmd.AddCommand(newCheckListCmd(opts))
	cmd.AddCommand(newCheckRetryCmd(opts))
	cmd.AddCommand(newCheckReportCmd(opts))
	cmd.AddCommand(newCheckResetCmd(opts))

	return cmd
}

func (o *checkOptions) repoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return projectroot.Find(wd)
}

// resolveStateDir anchors a relative state dir at the repo root so
// the store and Deps.StateDir always agree.
func (o *checkOptions) resolveStateDir(repoRoot string) string {
	if filepath.IsAbs(o.stateDir) {
		return o.stateDir
	}
	return filepath.Join(repoRoot, o.stateDir)
}

func (o *checkOptions) stateStore(repoRoot string) *runner.StateStore {
	return runner.NewStateStore(o.resolveStateDir(repoRoot))
}

func (o *checkOptions) commitSource(repoRoot string) (runner.CommitSource, error) {
	if o.ghRepo != "" {
		if o.ghPR <= 0 {
			return nil, fmt.Errorf("--gh-repo requires --gh-pr")
		}
		client, err := github.NewClient()
		if err != nil {
			return nil, err
		}
		return github.Source{Client: client, Repo: o.ghRepo, Number: o.ghPR}, nil
	}
	return gitlog.Source{RepoPath: repoRoot, Base: o.base, Head: o.head}, nil
}

func (o *checkOptions) setupRunner() (*runner.Runner, error) {
	repoRoot, err := o.repoRoot()
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadFromRepo(repoRoot)
	}
	if err != nil {
		return nil, err
	}

	source, err := o.commitSource(repoRoot)
	if err != nil {
		return nil, err
	}

	deps := &runner.Deps{
		RepoRoot: repoRoot,
		StateDir: o.resolveStateDir(repoRoot),
		Config:   cfg,
		Scanner:  scanner.New(repoRoot),
		Commits:  source,
	}

	return runner.NewRunner(gates.Registry, o.stateStore(repoRoot), deps), nil
}

func newCheckListCmd(opts *checkOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available gates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]string, 0, len(gates.Registry))
			for _, g := range gates.Registry {
				ids = append(ids, g.ID())
			}

			if opts.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"gates": ids})
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newCheckRetryCmd(opts *checkOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Re-run gates that failed in the last run",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.setupRunner()
			if err != nil {
				return err
			}
			if err := r.RunFailed(cmd.Context()); err != nil {
				return clierr.Wrap(1, "retry failed", err)
			}
			return nil
		},
	}
}

func newCheckReportCmd(opts *checkOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show last run status",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoRoot, err := opts.repoRoot()
			if err != nil {
				return err
			}
			last, err := opts.stateStore(repoRoot).ReadLastRun()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(last)
			}

			if last == nil {
				fmt.Fprintln(out, "No run state found.")
				return nil
			}

			fmt.Fprintf(out, "Status: %s\n", last.Status)
			if len(last.Failed) > 0 {
				fmt.Fprintln(out, "Failed:")
				for _, f := range last.Failed {
					fmt.Fprintf(out, "  - %s\n", f)
				}
			} else {
				fmt.Fprintln(out, "All passed.")
			}
			return nil
		},
	}
}

func newCheckResetCmd(opts *checkOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear run state",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoRoot, err := opts.repoRoot()
			if err != nil {
				return err
			}
			return opts.stateStore(repoRoot).Reset()
		},
	}
}
