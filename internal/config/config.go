// Package config holds the application configuration and its resolution
// chain. Values are resolved with the following priority (highest first):
//
//  1. CLI flags (--precision, --quiet, ...)
//  2. Environment variables (LINECALC_PRECISION, ...)
//  3. TOML configuration file (~/.linecalc.toml)
//  4. Static defaults
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	apperrors "github.com/agbru/linecalc/internal/errors"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "LINECALC_"

// Default configuration values.
const (
	// DefaultPrecision renders results with Go's shortest representation
	// (strconv 'g' with precision -1).
	DefaultPrecision = -1
	// DefaultHistorySize bounds the in-session REPL history.
	DefaultHistorySize = 100
	// DefaultTimeout bounds one-shot and script evaluation.
	DefaultTimeout = 1 * time.Minute
)

// AppConfig holds the complete resolved application configuration.
type AppConfig struct {
	// Expression is a single expression to evaluate and exit (-e).
	Expression string
	// ScriptFile is a file of expressions to evaluate line by line (-f).
	ScriptFile string
	// TUI launches the full-screen calculator instead of the line REPL.
	TUI bool
	// Quiet suppresses everything except results and errors.
	Quiet bool
	// Verbose enables debug-level logging.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Precision is the number of digits after the decimal point for
	// results, or -1 for the platform default rendering.
	Precision int
	// HistorySize is the maximum number of entries kept in REPL history.
	HistorySize int
	// FailFast stops script evaluation at the first failing line.
	FailFast bool
	// Timeout is the maximum duration for one-shot and script evaluation.
	Timeout time.Duration
	// MetricsAddr enables the Prometheus metrics server on the given
	// listen address when non-empty (e.g. ":9090").
	MetricsAddr string
	// Completion selects a shell to generate a completion script for.
	Completion string
	// ConfigFile overrides the default configuration file path.
	ConfigFile string
}

// DefaultConfig returns the static defaults, before file, environment and
// flag resolution.
func DefaultConfig() AppConfig {
	return AppConfig{
		Precision:   DefaultPrecision,
		HistorySize: DefaultHistorySize,
		Timeout:     DefaultTimeout,
	}
}

// ParseConfig resolves the application configuration from the command line,
// environment and configuration file.
//
// Parameters:
//   - programName: The name used in usage output (argv[0]).
//   - args: The command-line arguments, without the program name.
//   - errWriter: Destination for flag parse errors and usage output.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when --help was requested, a ConfigError for
//     invalid values, or the flag package's parse error. Errors other
//     than flag parse errors are also written to errWriter, matching
//     how the flag package reports its own.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := DefaultConfig()

	// The config file path may itself be overridden by flag or env, so it
	// is resolved in a first pass before the file is loaded. An explicit
	// --config wins over LINECALC_CONFIG.
	if path := configFilePathFromArgs(args); path != "" {
		cfg.ConfigFile = path
	} else if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		cfg.ConfigFile = path
	}
	if err := loadConfigFile(&cfg); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return cfg, err
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.Expression, "e", cfg.Expression, "Evaluate a single expression and exit (e.g. -e \"5 + 5\")")
	fs.StringVar(&cfg.ScriptFile, "f", cfg.ScriptFile, "Evaluate expressions from a file, one per line")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "Launch the full-screen calculator")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Only print results and errors")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "Only print results and errors (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable debug logging")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Enable debug logging (shorthand)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output")
	fs.IntVar(&cfg.Precision, "precision", cfg.Precision, "Digits after the decimal point (-1 for shortest form)")
	fs.IntVar(&cfg.HistorySize, "history-size", cfg.HistorySize, "Maximum REPL history entries")
	fs.BoolVar(&cfg.FailFast, "fail-fast", cfg.FailFast, "Stop script evaluation at the first error")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Maximum duration for one-shot and script evaluation")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Listen address for the Prometheus metrics server (empty disables)")
	fs.StringVar(&cfg.Completion, "completion", cfg.Completion, "Generate a shell completion script (bash, zsh, fish, powershell)")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Path to the TOML configuration file")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Interactive line calculator. Without options, starts a REPL reading\n")
		fmt.Fprintf(errWriter, "\"number operator number\" lines until 'q'.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return cfg, err
	}
	return cfg, nil
}

// validate rejects configurations that cannot be executed.
func validate(cfg AppConfig) error {
	if cfg.Expression != "" && cfg.ScriptFile != "" {
		return apperrors.NewConfigError("-e and -f are mutually exclusive")
	}
	if cfg.TUI && (cfg.Expression != "" || cfg.ScriptFile != "") {
		return apperrors.NewConfigError("--tui cannot be combined with -e or -f")
	}
	if cfg.Precision < -1 || cfg.Precision > 17 {
		return apperrors.ValidationError{Field: "precision", Message: "must be between -1 and 17"}
	}
	if cfg.HistorySize < 1 {
		return apperrors.ValidationError{Field: "history-size", Message: "must be at least 1"}
	}
	if cfg.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	switch cfg.Completion {
	case "", "bash", "zsh", "fish", "powershell", "ps":
	default:
		return apperrors.NewConfigError("unsupported shell %q for --completion", cfg.Completion)
	}
	return nil
}

// configFilePathFromArgs extracts a --config value before full flag
// parsing, so the file can seed flag defaults.
func configFilePathFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" || arg == "-config" {
			if i+1 < len(args) {
				return args[i+1]
			}
			continue
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
		if v, ok := strings.CutPrefix(arg, "-config="); ok {
			return v
		}
	}
	return ""
}
