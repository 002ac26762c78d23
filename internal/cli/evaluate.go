package cli

import (
	"github.com/agbru/linecalc/internal/calc"
	apperrors "github.com/agbru/linecalc/internal/errors"
)

// EvaluateLine parses and evaluates one expression line. Any parse or
// evaluation failure is returned as an apperrors.CalculationError so
// callers can distinguish calculation failures from I/O and
// configuration errors; the underlying *calc.ParseError or
// *calc.EvalError stays reachable through errors.As, and the message
// surfaced to the user is unchanged.
func EvaluateLine(raw string) (calc.Expression, float64, error) {
	expr, err := calc.Parse(raw)
	if err != nil {
		return calc.Expression{}, 0, apperrors.CalculationError{Cause: err}
	}

	result, err := expr.Evaluate()
	if err != nil {
		return expr, 0, apperrors.CalculationError{Cause: err}
	}
	return expr, result, nil
}
