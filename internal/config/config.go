package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Tool is one external command. Args may contain FilePlaceholder.
type Tool struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
}

// FilePlaceholder is replaced by the target file path in Tool.Args.
const FilePlaceholder = "{file}"

// Expand returns the argument list for file.
func (t Tool) Expand(file string) []string {
	args := make([]string, 0, len(t.Args))
	for _, a := range t.Args {
		args = append(args, strings.ReplaceAll(a, FilePlaceholder, file))
	}
	return args
}

// Step is one formatting pass. The first installed tool in Tools runs.
// When none is installed the step reports Missing as not_installed, or is
// skipped silently when Missing is empty.
type Step struct {
	Tools   []Tool `yaml:"tools"`
	Missing string `yaml:"missing,omitempty"`
}

// Language maps file extensions to an ordered list of steps.
type Language struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions"`
	Steps      []Step   `yaml:"steps"`
}

// Lint configures the ruff-lint hook.
type Lint struct {
	Command    string   `yaml:"command"`
	Extensions []string `yaml:"extensions"`
}

type Config struct {
	LogDir            string        `yaml:"log_dir"`
	MaxEntries        int           `yaml:"max_entries"`
	Timeout           time.Duration `yaml:"timeout"`
	RestrictToWorkdir bool          `yaml:"restrict_to_workdir"`
	Exclude           []string      `yaml:"exclude,omitempty"`
	Lint              Lint          `yaml:"lint"`
	Languages         []Language    `yaml:"languages,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogDir:     "logs",
		MaxEntries: 100,
		Lint: Lint{
			Command:    "ruff",
			Extensions: []string{".py"},
		},
		Languages: DefaultLanguages(),
	}
}

// DefaultLanguages is the built-in extension table.
func DefaultLanguages() []Language {
	prettier := Tool{Command: "prettier", Args: []string{"--write", FilePlaceholder}}
	deno := Tool{Command: "deno", Args: []string{"fmt", FilePlaceholder}}
	return []Language{
		{
			Name:       "python",
			Extensions: []string{".py"},
			Steps: []Step{
				{Tools: []Tool{{Command: "isort", Args: []string{FilePlaceholder}}}},
				{Tools: []Tool{{Command: "black", Args: []string{"--quiet", FilePlaceholder}}}},
			},
		},
		{
			Name:       "go",
			Extensions: []string{".go"},
			Steps: []Step{
				{Tools: []Tool{{Command: "gofmt", Args: []string{"-w", FilePlaceholder}}}, Missing: "gofmt"},
			},
		},
		{
			Name:       "rust",
			Extensions: []string{".rs"},
			Steps: []Step{
				{Tools: []Tool{{Command: "rustfmt", Args: []string{"--edition", "2021", FilePlaceholder}}}, Missing: "rustfmt"},
			},
		},
		{
			Name:       "javascript",
			Extensions: []string{".js", ".jsx", ".mjs"},
			Steps:      []Step{{Tools: []Tool{prettier, deno}, Missing: "prettier/deno"}},
		},
		{
			Name:       "typescript",
			Extensions: []string{".ts", ".tsx"},
			Steps:      []Step{{Tools: []Tool{prettier, deno}, Missing: "prettier/deno"}},
		},
		{
			Name:       "json",
			Extensions: []string{".json"},
			Steps:      []Step{{Tools: []Tool{prettier}, Missing: "prettier/deno"}},
		},
	}
}

// MergeLanguages overlays extra onto base: a language with a known name
// replaces the base entry in place, new names are appended.
func MergeLanguages(base, extra []Language) []Language {
	out := make([]Language, len(base))
	copy(out, base)
	for _, l := range extra {
		replaced := false
		for i := range out {
			if out[i].Name == l.Name {
				out[i] = l
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, l)
		}
	}
	return out
}

// Validate reports the first problem found in cfg.
func (c Config) Validate() error {
	if c.MaxEntries < 0 {
		return fmt.Errorf("max_entries must not be negative, got %d", c.MaxEntries)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	for i, l := range c.Languages {
		if l.Name == "" {
			return fmt.Errorf("languages[%d]: name is required", i)
		}
		if len(l.Extensions) == 0 {
			return fmt.Errorf("language %q: at least one extension is required", l.Name)
		}
		for j, s := range l.Steps {
			if len(s.Tools) == 0 {
				return fmt.Errorf("language %q: steps[%d] has no tools", l.Name, j)
			}
			for _, t := range s.Tools {
				if t.Command == "" {
					return fmt.Errorf("language %q: steps[%d] has a tool without command", l.Name, j)
				}
			}
		}
	}
	return nil
}

// ErrNotFound is returned by FindConfigPath when no config file exists.
var ErrNotFound = errors.New("no .hooks/config.yaml or hooks/config.yaml found")

// FindConfigPath searches upward from dir for ".hooks/config.yaml" and then
// "hooks/config.yaml" in each directory.
func FindConfigPath(dir string) (string, error) {
	for {
		for _, rel := range []string{filepath.Join(".hooks", "config.yaml"), filepath.Join("hooks", "config.yaml")} {
			p := filepath.Join(dir, rel)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load reads the YAML file at path on top of Default. Languages in the file
// are merged into the built-in table by name.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	cfg.Languages = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Languages = MergeLanguages(DefaultLanguages(), cfg.Languages)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve finds and loads the configuration for workDir. HOOK_CONFIG names
// an explicit file. A missing file yields Default; env overrides apply last.
func Resolve(workDir string) (Config, error) {
	path := os.Getenv("HOOK_CONFIG")
	if path == "" {
		p, err := FindConfigPath(workDir)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return Default(), err
		}
		path = p
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return applyEnv(Default()), err
		}
		cfg = loaded
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if d := os.Getenv("HOOK_LOG_DIR"); d != "" {
		cfg.LogDir = d
	}
	return cfg
}

// Save marshals cfg to YAML and writes it to path, creating parent dirs.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
