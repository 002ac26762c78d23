// Package cli provides the line-oriented interface of the calculator: the
// interactive REPL that is the default mode, one-shot expression
// evaluation, and script-file processing.
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

	"github.com/google/uuid"

	"github.com/agbru/linecalc/internal/calc"
	"github.com/agbru/linecalc/internal/format"
	"github.com/agbru/linecalc/internal/logging"
	"github.com/agbru/linecalc/internal/telemetry"
	"github.com/agbru/linecalc/internal/ui"
)

// PromptLine is the fixed instructional line printed before each read.
const PromptLine = "Please enter your calculation (e.g. 5 + 5) or 'q' to quit:"

// FarewellLine is printed when the user quits the session.
const FarewellLine = "Thanks for using."

// REPLConfig holds configuration for an interactive session.
type REPLConfig struct {
	// Precision is the result display precision (-1 for default).
	Precision int
	// HistorySize bounds the in-session history.
	HistorySize int
	// Quiet suppresses the banner; the prompt is always printed.
	Quiet bool
}

// REPL is an interactive calculator session: it repeatedly reads a line,
// parses it, evaluates it and prints the result, until the user quits or
// input ends.
type REPL struct {
	config    REPLConfig
	history   *History
	logger    logging.Logger
	recorder  CalcRecorder
	sessionID string
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
}

// NewREPL creates a REPL reading from stdin and writing to stdout/stderr.
// Each session gets a unique id carried on every log entry.
func NewREPL(config REPLConfig) *REPL {
	if config.HistorySize < 1 {
		config.HistorySize = 1
	}
	return &REPL{
		config:    config,
		history:   NewHistory(config.HistorySize),
		logger:    logging.NopLogger{},
		recorder:  NopRecorder{},
		sessionID: uuid.NewString(),
		in:        os.Stdin,
		out:       os.Stdout,
		errOut:    os.Stderr,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// SetErrOutput sets a custom error stream writer (useful for testing).
func (r *REPL) SetErrOutput(errOut io.Writer) { r.errOut = errOut }

// SetLogger sets the session logger.
func (r *REPL) SetLogger(logger logging.Logger) { r.logger = logger }

// SetRecorder sets the metrics recorder notified on each calculation.
func (r *REPL) SetRecorder(rec CalcRecorder) { r.recorder = rec }

// Start runs the session until the user quits, input ends, or the context
// is canceled. It returns nil on a normal quit or end of input; a read
// failure on the input stream is returned to the caller and terminates the
// program.
func (r *REPL) Start(ctx context.Context) error {
	r.logger.Info("session started", logging.String("session_id", r.sessionID))

	if !r.config.Quiet {
		r.printBanner()
	}

	reader := bufio.NewReader(r.in)

	for {
		if err := ctx.Err(); err != nil {
			r.logger.Info("session canceled", logging.String("session_id", r.sessionID))
			return nil
		}

		fmt.Fprintln(r.out, PromptLine)

		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Evaluate a final unterminated line before leaving.
				if strings.TrimSpace(line) != "" && !r.processLine(ctx, line) {
					return nil
				}
				fmt.Fprintln(r.out, FarewellLine)
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		if !r.processLine(ctx, line) {
			return nil
		}
	}
}

// processLine dispatches one raw input line. Returns false when the
// session should end.
func (r *REPL) processLine(ctx context.Context, line string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(line))

	switch trimmed {
	case "":
		return true
	case "q", "quit", "exit":
		fmt.Fprintln(r.out, FarewellLine)
		r.logger.Info("session ended",
			logging.String("session_id", r.sessionID),
			logging.Int("calculations", r.history.Len()))
		return false
	case "help", "h", "?":
		r.printHelp()
		return true
	case "history":
		r.cmdHistory()
		return true
	case "status":
		r.cmdStatus()
		return true
	}

	r.calculate(ctx, line)
	return true
}

// calculate runs the parse-then-evaluate pipeline for one line and prints
// the outcome. Failures at either stage go to the error stream and the
// loop continues; one iteration never affects the next.
func (r *REPL) calculate(ctx context.Context, raw string) {
	_, span := telemetry.StartCalculation(ctx, "repl", len(raw))

	expr, err := calc.Parse(raw)
	if err != nil {
		var perr *calc.ParseError
		if errors.As(err, &perr) {
			r.recorder.RecordParseError(perr.Kind.String())
		}
		DisplayError(r.errOut, err)
		r.logger.Debug("parse failed",
			logging.String("session_id", r.sessionID),
			logging.Err(err))
		telemetry.EndCalculation(span, "", err)
		return
	}

	start := time.Now()
	result, err := expr.Evaluate()
	elapsed := time.Since(start)

	if err != nil {
		var eerr *calc.EvalError
		if errors.As(err, &eerr) {
			r.recorder.RecordEvalError(eerr.Kind.String())
		}
		r.history.Add(HistoryEntry{Expr: expr, Err: err, At: time.Now()})
		DisplayError(r.errOut, err)
		r.logger.Debug("evaluation failed",
			logging.String("session_id", r.sessionID),
			logging.String("operator", string(expr.Op)),
			logging.Err(err))
		telemetry.EndCalculation(span, string(expr.Op), err)
		return
	}

	r.recorder.RecordCalculation(string(expr.Op), elapsed)
	r.history.Add(HistoryEntry{Expr: expr, Result: result, At: time.Now()})
	DisplayResult(r.out, expr, result, r.config.Precision)
	r.logger.Debug("expression evaluated",
		logging.String("session_id", r.sessionID),
		logging.String("operator", string(expr.Op)),
		logging.Float64("result", result))
	telemetry.EndCalculation(span, string(expr.Op), nil)
}

// printBanner displays the session banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "%slinecalc%s - interactive calculator. Type %shelp%s for commands.\n",
		ui.ColorBold(), ui.ColorReset(), ui.ColorOperator(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sEnter a calculation as:%s number operator number (e.g. 5 + 5)\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "Operators: +, -, *, /\n\n")
	fmt.Fprintf(r.out, "%sCommands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shistory%s       - Show calculations from this session\n", ui.ColorOperator(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Show current settings\n", ui.ColorOperator(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Show this help\n", ui.ColorOperator(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sq%s / %squit%s      - End the session\n", ui.ColorOperator(), ui.ColorReset(), ui.ColorOperator(), ui.ColorReset())
}

// cmdHistory lists the session's evaluations, oldest first.
func (r *REPL) cmdHistory() {
	if r.history.Len() == 0 {
		fmt.Fprintln(r.out, "No calculations yet.")
		return
	}
	for i, e := range r.history.Entries() {
		if e.Err != nil {
			fmt.Fprintf(r.out, "%3d: %s -> %s%v%s\n", i+1, e.Expr, ui.ColorError(), e.Err, ui.ColorReset())
			continue
		}
		fmt.Fprintf(r.out, "%3d: %s\n", i+1, FormatResultLine(e.Expr, e.Result, r.config.Precision))
	}
}

// cmdStatus displays the current session configuration.
func (r *REPL) cmdStatus() {
	precision := "default"
	if r.config.Precision >= 0 {
		precision = format.Number(float64(r.config.Precision), 0) + " digits"
	}
	fmt.Fprintf(r.out, "Precision:    %s%s%s\n", ui.ColorInfo(), precision, ui.ColorReset())
	fmt.Fprintf(r.out, "History:      %s%d/%d entries%s\n", ui.ColorInfo(), r.history.Len(), r.config.HistorySize, ui.ColorReset())
	fmt.Fprintf(r.out, "Session:      %s%s%s\n", ui.ColorInfo(), r.sessionID, ui.ColorReset())
}
