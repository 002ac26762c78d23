// Package calc contains the core of the calculator: parsing a raw input
// line into a validated expression, and evaluating that expression into a
// numeric result. Both halves are pure functions with no retained state,
// so every REPL iteration is independent.
package calc

import "fmt"

// Operator is one of the four supported arithmetic operators.
type Operator string

// The closed set of supported operators. An Expression never carries any
// other value; Parse enforces this at construction time.
const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

// Operators lists all supported operators, in display order.
var Operators = []Operator{OpAdd, OpSub, OpMul, OpDiv}

// Valid reports whether op is one of the four supported operators.
func (op Operator) Valid() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// Expression is a validated binary arithmetic expression: two operands in
// input order and the operator between them. It is constructed exclusively
// by Parse and consumed by Evaluate; it is never mutated.
type Expression struct {
	// A is the first operand, as written by the user.
	A float64
	// B is the second operand, as written by the user.
	B float64
	// Op is the operator. Always one of the four supported symbols.
	Op Operator
}

// String renders the expression in the same "a op b" form Parse accepts,
// so parsing the string form of an Expression yields an equivalent triple.
func (e Expression) String() string {
	return fmt.Sprintf("%v %s %v", e.A, e.Op, e.B)
}

// Evaluate applies the expression's operator to its operands.
func (e Expression) Evaluate() (float64, error) {
	return Evaluate(e.A, e.B, e.Op)
}
