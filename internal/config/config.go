package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bartekus/prgate/internal/commitmsg"
)

// DefaultFileName is looked up at the repository root when no
// explicit --config path is given.
const DefaultFileName = ".prgate.yml"

// Config is the gate policy file. Every field has a default that
// reproduces the stock checks, so an absent file is valid.
type Config struct {
	Commits CommitsConfig `yaml:"commits"`
	Lint    LintConfig    `yaml:"lint"`
}

// CommitsConfig shapes the commit-message gate.
type CommitsConfig struct {
	TicketPattern string   `yaml:"ticket_pattern"`
	Tags          []string `yaml:"tags"`
	MergePrefix   string   `yaml:"merge_prefix"`
}

// LintConfig shapes the lint gate.
type LintConfig struct {
	// Tool is the analyzer binary to invoke.
	Tool string `yaml:"tool"`
	// Args are passed before the file list.
	Args []string `yaml:"args"`
	// Extensions selects which tracked files are linted.
	Extensions []string `yaml:"extensions"`
	// ExcludeDirs are skipped by directory segment.
	ExcludeDirs []string `yaml:"exclude_dirs"`
	// ExitZero forces the gate to report success regardless of
	// findings. On by default to match the stock configuration.
	ExitZero bool `yaml:"exit_zero"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Commits: CommitsConfig{
			TicketPattern: commitmsg.DefaultTicketPattern,
			Tags:          append([]string(nil), commitmsg.DefaultTags...),
			MergePrefix:   commitmsg.DefaultMergePrefix,
		},
		Lint: LintConfig{
			Tool:        "pylint",
			Args:        []string{"--disable=C,R,W,I"},
			Extensions:  []string{".py"},
			ExcludeDirs: []string{".git", "vendor", "node_modules", ".prgate"},
			ExitZero:    true,
		},
	}
}

// Load reads the config at path, layering it over the defaults.
// A missing file yields the defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromRepo loads the default config file from the repository
// root, falling back to defaults when it is absent.
func LoadFromRepo(repoRoot string) (*Config, error) {
	return Load(filepath.Join(repoRoot, DefaultFileName))
}

// Policy builds the compiled commit policy from the config.
func (c *Config) Policy() (*commitmsg.Policy, error) {
	p := &commitmsg.Policy{
		TicketPattern: c.Commits.TicketPattern,
		Tags:          c.Commits.Tags,
		MergePrefix:   c.Commits.MergePrefix,
	}
	if err := p.Compile(); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Config) validate() error {
	if c.Lint.Tool == "" {
		return fmt.Errorf("lint.tool must not be empty")
	}
	if len(c.Lint.Extensions) == 0 {
		return fmt.Errorf("lint.extensions must not be empty")
	}
	// Compiling the policy surfaces pattern/tag mistakes at load
	// time instead of mid-run.
	if _, err := c.Policy(); err != nil {
		return err
	}
	return nil
}
