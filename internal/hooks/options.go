package hooks

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iikjl/gofore-hotvibes-sauna-evening/internal/config"
	"github.com/iikjl/gofore-hotvibes-sauna-evening/internal/runlog"
)

// Log file names under the configured log directory.
const (
	FormatterLogName = "multi_formatter.json"
	LintLogName      = "ruff_lint.json"
)

// Options carries everything a hook needs besides its input.
type Options struct {
	WorkDir string
	Config  config.Config
	Runner  Runner
	Logger  *slog.Logger
	Now     func() time.Time
}

// LoadOptions builds Options for the current process: working directory,
// resolved config, an ExecRunner and a stderr logger. Config problems are
// logged and defaults used.
func LoadOptions(stderr io.Writer) Options {
	logger := NewLogger(stderr)
	wd, err := os.Getwd()
	if err != nil {
		logger.Warn("getwd failed", "error", err)
	}
	cfg, err := config.Resolve(wd)
	if err != nil {
		logger.Warn("config ignored", "error", err)
	}
	return Options{
		WorkDir: wd,
		Config:  cfg,
		Runner:  ExecRunner{Timeout: cfg.Timeout},
		Logger:  logger,
		Now:     time.Now,
	}
}

func (o Options) withDefaults() Options {
	if o.Runner == nil {
		o.Runner = ExecRunner{Timeout: o.Config.Timeout}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Config.LogDir == "" {
		o.Config.LogDir = "logs"
	}
	return o
}

// LogDir returns the log directory, relative paths anchored at WorkDir.
func (o Options) LogDir() string {
	dir := o.Config.LogDir
	if dir == "" {
		dir = "logs"
	}
	if !filepath.IsAbs(dir) && o.WorkDir != "" {
		dir = filepath.Join(o.WorkDir, dir)
	}
	return dir
}

// OpenLog opens the named run log under LogDir.
func (o Options) OpenLog(name string) (*runlog.Log, error) {
	return runlog.Open(o.LogDir(), name, o.Config.MaxEntries)
}

func (o Options) timestamp() string {
	return o.Now().Format(time.RFC3339Nano)
}

// NewLogger returns a text logger on w. HOOK_LOG_LEVEL selects the level
// (debug, info, warn, error); warn by default so hooks stay quiet.
func NewLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(os.Getenv("HOOK_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
