package calc

import (
	"strconv"
	"strings"
)

// Parse converts a raw input line into a validated Expression.
//
// The line is split on whitespace (empty runs discarded) and must produce
// exactly three tokens: operand, operator, operand. Operands accept
// anything strconv.ParseFloat does, including signs and scientific
// notation. The operator must be exactly one of + - * /.
//
// Parse is a pure function of its input; the returned error is always a
// *ParseError.
//
// Parameters:
//   - raw: The raw input line, possibly with surrounding whitespace.
//
// Returns:
//   - Expression: The validated expression, operands in input order.
//   - error: A *ParseError describing the first failure encountered.
func Parse(raw string) (Expression, error) {
	tokens := strings.Fields(raw)
	if len(tokens) != 3 {
		return Expression{}, &ParseError{Kind: WrongArity, TokenCount: len(tokens)}
	}

	a, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return Expression{}, &ParseError{Kind: NotANumber, Token: tokens[0]}
	}
	b, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return Expression{}, &ParseError{Kind: NotANumber, Token: tokens[2]}
	}

	op := Operator(tokens[1])
	if !op.Valid() {
		return Expression{}, &ParseError{Kind: UnknownOperator, Token: tokens[1]}
	}

	return Expression{A: a, B: b, Op: op}, nil
}
