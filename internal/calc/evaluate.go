package calc

// Evaluate applies op to the operands a and b.
//
// Addition, subtraction and multiplication always succeed. Division fails
// with a *EvalError of kind DivisionByZero when b is exactly 0.0; the
// check uses exact floating-point equality, no epsilon tolerance. Any
// operator outside the supported set fails with UnsupportedOperator even
// though Parse never produces one.
//
// Evaluate is pure and retains no state between calls.
func Evaluate(a, b float64, op Operator) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0.0 {
			return 0, &EvalError{Kind: DivisionByZero}
		}
		return a / b, nil
	default:
		return 0, &EvalError{Kind: UnsupportedOperator, Op: op}
	}
}
