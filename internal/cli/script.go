package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/linecalc/internal/calc"
	apperrors "github.com/agbru/linecalc/internal/errors"
	"github.com/agbru/linecalc/internal/format"
	"github.com/agbru/linecalc/internal/logging"
	"github.com/agbru/linecalc/internal/telemetry"
)

// SpinnerRefreshRate defines the refresh frequency of the script-mode
// progress spinner.
const SpinnerRefreshRate = 100 * time.Millisecond

// Spinner abstracts the terminal spinner shown during script evaluation,
// decoupling RunScript from a specific implementation for testing.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to implement the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// newSpinner is a test seam; tests replace it with a fake.
var newSpinner = func(w io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(w))
	return &realSpinner{s}
}

// ScriptConfig holds configuration for script-file evaluation.
type ScriptConfig struct {
	// Precision is the result display precision (-1 for default).
	Precision int
	// FailFast stops at the first failing line.
	FailFast bool
	// Quiet disables the spinner and the summary line.
	Quiet bool
}

// ScriptSummary reports the outcome of a script run.
type ScriptSummary struct {
	// Evaluated is the number of expression lines processed.
	Evaluated int
	// Failed is the number of lines that failed to parse or evaluate.
	Failed int
	// Duration is the total wall-clock time of the run.
	Duration time.Duration
}

// RunScript evaluates expressions from the named file, one per line.
// Blank lines and lines starting with '#' are skipped. Each successful
// line prints the canonical result line; failures print to errOut with
// the line number and, unless FailFast is set, processing continues.
//
// The returned error covers file access problems and context
// cancellation only; expression failures are reported in the summary.
func RunScript(ctx context.Context, path string, cfg ScriptConfig, out, errOut io.Writer, logger logging.Logger, recorder CalcRecorder) (ScriptSummary, error) {
	file, err := os.Open(path)
	if err != nil {
		return ScriptSummary{}, apperrors.WrapError(err, "opening script %q", path)
	}
	defer file.Close()

	var spin Spinner
	if !cfg.Quiet {
		spin = newSpinner(errOut)
		spin.Start()
		defer spin.Stop()
	}

	start := time.Now()
	var summary ScriptSummary
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}

		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if spin != nil {
			spin.UpdateSuffix(fmt.Sprintf(" line %d", lineNo))
		}

		summary.Evaluated++
		if ok := evaluateScriptLine(ctx, line, lineNo, cfg, out, errOut, recorder); !ok {
			summary.Failed++
			if cfg.FailFast {
				break
			}
		}
	}

	summary.Duration = time.Since(start)

	if err := scanner.Err(); err != nil {
		return summary, apperrors.WrapError(err, "reading script %q", path)
	}

	if spin != nil {
		spin.Stop()
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "\n%d evaluated, %d failed in %s\n",
			summary.Evaluated, summary.Failed, format.FormatExecutionDuration(summary.Duration))
	}
	logger.Info("script processed",
		logging.String("file", path),
		logging.Int("evaluated", summary.Evaluated),
		logging.Int("failed", summary.Failed))

	return summary, nil
}

// evaluateScriptLine processes a single expression line and reports
// whether it succeeded.
func evaluateScriptLine(ctx context.Context, line string, lineNo int, cfg ScriptConfig, out, errOut io.Writer, recorder CalcRecorder) bool {
	_, span := telemetry.StartCalculation(ctx, "script", len(line))

	start := time.Now()
	expr, result, err := EvaluateLine(line)
	elapsed := time.Since(start)

	if err != nil {
		var perr *calc.ParseError
		var eerr *calc.EvalError
		switch {
		case errors.As(err, &perr):
			recorder.RecordParseError(perr.Kind.String())
		case errors.As(err, &eerr):
			recorder.RecordEvalError(eerr.Kind.String())
		}
		fmt.Fprintf(errOut, "%sline %d: %v\n", ErrorPrefix, lineNo, err)
		telemetry.EndCalculation(span, string(expr.Op), err)
		return false
	}

	recorder.RecordCalculation(string(expr.Op), elapsed)
	fmt.Fprintln(out, FormatResultLine(expr, result, cfg.Precision))
	telemetry.EndCalculation(span, string(expr.Op), nil)
	return true
}
