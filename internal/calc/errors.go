package calc

import "fmt"

// ParseErrorKind identifies the category of a parse failure. The set is
// closed, giving callers exhaustive-match guarantees instead of string
// inspection.
type ParseErrorKind int

const (
	// WrongArity indicates the input did not split into exactly three tokens.
	WrongArity ParseErrorKind = iota
	// NotANumber indicates an operand token could not be converted to a float.
	NotANumber
	// UnknownOperator indicates the operator token is not one of + - * /.
	UnknownOperator
)

// String returns a stable snake_case label for the kind, used as a
// metrics label value.
func (k ParseErrorKind) String() string {
	switch k {
	case WrongArity:
		return "wrong_arity"
	case NotANumber:
		return "not_a_number"
	case UnknownOperator:
		return "unknown_operator"
	}
	return "unknown"
}

// ParseError describes why an input line could not be parsed into an
// Expression. The message returned by Error is surfaced verbatim to the
// user on the error stream.
type ParseError struct {
	// Kind is the category of the failure.
	Kind ParseErrorKind
	// Token is the offending token, when the failure concerns one.
	Token string
	// TokenCount is the number of tokens found, for WrongArity failures.
	TokenCount int
}

// Error returns the human-readable description of the parse failure.
func (e *ParseError) Error() string {
	switch e.Kind {
	case WrongArity:
		return fmt.Sprintf("expected 3 parts (number operator number), got %d", e.TokenCount)
	case NotANumber:
		return fmt.Sprintf("%q is not a number", e.Token)
	case UnknownOperator:
		return fmt.Sprintf("invalid operator %q, use +, -, * or /", e.Token)
	}
	return "invalid input"
}

// EvalErrorKind identifies the category of an evaluation failure.
type EvalErrorKind int

const (
	// DivisionByZero indicates a division with a second operand of exactly zero.
	DivisionByZero EvalErrorKind = iota
	// UnsupportedOperator indicates an operator outside the supported set
	// reached the evaluator. Unreachable through Parse, but the evaluator
	// does not trust callers to have pre-validated.
	UnsupportedOperator
)

// String returns a stable snake_case label for the kind, used as a
// metrics label value.
func (k EvalErrorKind) String() string {
	switch k {
	case DivisionByZero:
		return "division_by_zero"
	case UnsupportedOperator:
		return "unsupported_operator"
	}
	return "unknown"
}

// EvalError describes why a validated expression could not be evaluated.
type EvalError struct {
	// Kind is the category of the failure.
	Kind EvalErrorKind
	// Op is the operator involved, for UnsupportedOperator failures.
	Op Operator
}

// Error returns the human-readable description of the evaluation failure.
func (e *EvalError) Error() string {
	switch e.Kind {
	case DivisionByZero:
		return "cannot divide by zero"
	case UnsupportedOperator:
		return fmt.Sprintf("unsupported operator %q", string(e.Op))
	}
	return "calculation failed"
}
