package cli

import "time"

// CalcRecorder receives a notification for every calculation attempt, so
// an observability backend can count operations and failures without the
// REPL depending on it directly.
type CalcRecorder interface {
	// RecordCalculation records a successful evaluation of op taking d.
	RecordCalculation(op string, d time.Duration)
	// RecordParseError records a parse failure of the given kind.
	RecordParseError(kind string)
	// RecordEvalError records an evaluation failure of the given kind.
	RecordEvalError(kind string)
}

// NopRecorder discards all recordings. Used when metrics are disabled.
type NopRecorder struct{}

// RecordCalculation discards the recording.
func (NopRecorder) RecordCalculation(string, time.Duration) {}

// RecordParseError discards the recording.
func (NopRecorder) RecordParseError(string) {}

// RecordEvalError discards the recording.
func (NopRecorder) RecordEvalError(string) {}

var _ CalcRecorder = NopRecorder{}
