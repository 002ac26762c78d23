// Package app wires configuration, logging and the execution modes
// together. main stays thin; all decisions live here.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/linecalc/internal/cli"
	"github.com/agbru/linecalc/internal/config"
	apperrors "github.com/agbru/linecalc/internal/errors"
	"github.com/agbru/linecalc/internal/logging"
	"github.com/agbru/linecalc/internal/server"
	"github.com/agbru/linecalc/internal/tui"
	"github.com/agbru/linecalc/internal/ui"
)

// Application represents one linecalc invocation.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	logger   logging.Logger
	recorder cli.CalcRecorder
	metrics  *server.Metrics
}

// New creates an Application by parsing command-line arguments, the
// environment and the optional configuration file.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "linecalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		ErrWriter: errWriter,
		recorder:  cli.NopRecorder{},
	}, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	a.setupLogging()
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.MetricsAddr == "" {
		return a.runMode(ctx, out)
	}

	// The metrics listener lives exactly as long as the selected mode.
	a.metrics = server.NewMetrics()
	a.recorder = a.metrics
	srv := server.New(a.Config.MetricsAddr, a.metrics, a.logger)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		err := srv.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	exitCode := a.runMode(gctx, out)
	cancel()

	if err := g.Wait(); err != nil && exitCode == apperrors.ExitSuccess {
		a.logger.Error("metrics server failed", err)
		exitCode = apperrors.ExitErrorGeneric
	}
	return exitCode
}

// runMode dispatches to the selected execution mode.
func (a *Application) runMode(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.Expression != "":
		return a.runOneShot(out)
	case a.Config.ScriptFile != "":
		return a.runScript(ctx, out)
	case a.Config.TUI:
		return tui.Run(ctx, a.Config, a.recorder, Version)
	default:
		return a.runREPL(ctx, out)
	}
}

// setupLogging configures the global log level and the session logger.
// Structured logs only appear in verbose mode; the driver loop's own
// output stays plain.
func (a *Application) setupLogging() {
	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if a.Config.Verbose {
		a.logger = logging.NewDefaultLogger()
	} else {
		a.logger = logging.NopLogger{}
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL runs the interactive driver loop on stdin/stdout.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	if a.metrics != nil {
		a.metrics.IncrementActiveSessions()
		defer a.metrics.DecrementActiveSessions()
	}

	r := cli.NewREPL(cli.REPLConfig{
		Precision:   a.Config.Precision,
		HistorySize: a.Config.HistorySize,
		Quiet:       a.Config.Quiet,
	})
	r.SetInput(os.Stdin)
	r.SetOutput(out)
	r.SetErrOutput(a.ErrWriter)
	r.SetLogger(a.logger)
	r.SetRecorder(a.recorder)

	if err := r.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorIO
	}
	return apperrors.ExitSuccess
}

// runOneShot evaluates a single expression and exits.
func (a *Application) runOneShot(out io.Writer) int {
	expr, result, err := cli.EvaluateLine(a.Config.Expression)
	if err != nil {
		cli.DisplayError(a.ErrWriter, err)
		return apperrors.ExitErrorGeneric
	}

	cli.DisplayResult(out, expr, result, a.Config.Precision)
	return apperrors.ExitSuccess
}

// runScript evaluates expressions from the configured file under the
// configured timeout.
func (a *Application) runScript(ctx context.Context, out io.Writer) int {
	ctx, cancel := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancel()

	cfg := cli.ScriptConfig{
		Precision: a.Config.Precision,
		FailFast:  a.Config.FailFast,
		Quiet:     a.Config.Quiet,
	}

	summary, err := cli.RunScript(ctx, a.Config.ScriptFile, cfg, out, a.ErrWriter, a.logger, a.recorder)
	if err != nil {
		if apperrors.IsContextError(err) {
			fmt.Fprintf(a.ErrWriter, "Error: script canceled: %v\n", err)
			return apperrors.ExitErrorCanceled
		}
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorIO
	}

	if summary.Failed > 0 {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
