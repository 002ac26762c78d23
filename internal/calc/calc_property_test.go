package calc

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// finiteFloats generates operands in a range that keeps every operation
// finite, so properties test arithmetic rather than overflow behavior.
func finiteFloats() gopter.Gen {
	return gen.Float64Range(-1e100, 1e100)
}

// TestParseEvaluate_PropertyBased verifies that for any well-formed input
// built from an Expression's string form, parsing then evaluating yields
// the IEEE-754 result of applying the operator directly.
func TestParseEvaluate_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	for _, op := range Operators {
		op := op
		properties.Property(string(op)+" round-trips through parse and evaluate", prop.ForAll(
			func(a, b float64) bool {
				if op == OpDiv && b == 0 {
					b = 1
				}
				expr, err := Parse(Expression{A: a, B: b, Op: op}.String())
				if err != nil {
					return false
				}
				got, err := expr.Evaluate()
				if err != nil {
					return false
				}
				want, err := Evaluate(a, b, op)
				if err != nil {
					return false
				}
				return got == want || (math.IsNaN(got) && math.IsNaN(want))
			},
			finiteFloats(),
			finiteFloats(),
		))
	}

	properties.TestingRun(t)
}

// TestEvaluate_Commutativity_PropertyBased verifies a + b == b + a and
// a * b == b * a, which holds exactly for IEEE-754 addition and
// multiplication.
func TestEvaluate_Commutativity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	for _, op := range []Operator{OpAdd, OpMul} {
		op := op
		properties.Property(string(op)+" is commutative", prop.ForAll(
			func(a, b float64) bool {
				x, err1 := Evaluate(a, b, op)
				y, err2 := Evaluate(b, a, op)
				return err1 == nil && err2 == nil && x == y
			},
			finiteFloats(),
			finiteFloats(),
		))
	}

	properties.TestingRun(t)
}

// TestEvaluate_Identities_PropertyBased verifies the identity elements:
// a + 0 == a, a - 0 == a, a * 1 == a, a / 1 == a.
func TestEvaluate_Identities_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	identities := []struct {
		op      Operator
		neutral float64
	}{
		{OpAdd, 0},
		{OpSub, 0},
		{OpMul, 1},
		{OpDiv, 1},
	}

	for _, id := range identities {
		id := id
		properties.Property(string(id.op)+" has its identity element", prop.ForAll(
			func(a float64) bool {
				got, err := Evaluate(a, id.neutral, id.op)
				return err == nil && got == a
			},
			finiteFloats(),
		))
	}

	properties.TestingRun(t)
}

// TestEvaluate_SubInvertsAdd_PropertyBased verifies (a + b) - b stays
// within one unit in the last place of a.
func TestEvaluate_SubInvertsAdd_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("subtraction approximately inverts addition", prop.ForAll(
		func(a, b float64) bool {
			sum, err := Evaluate(a, b, OpAdd)
			if err != nil {
				return false
			}
			back, err := Evaluate(sum, b, OpSub)
			if err != nil {
				return false
			}
			// Rounding in the intermediate sum bounds the drift.
			tol := math.Max(math.Abs(a), math.Abs(b)) * 1e-15
			return math.Abs(back-a) <= tol
		},
		gen.Float64Range(-1e15, 1e15),
		gen.Float64Range(-1e15, 1e15),
	))

	properties.TestingRun(t)
}

// TestParse_NeverPanics_PropertyBased verifies Parse is total over
// arbitrary strings: it returns either a valid expression or a typed
// error, and never constructs an invalid operator.
func TestParse_NeverPanics_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("parse is total and validates the operator", prop.ForAll(
		func(raw string) bool {
			expr, err := Parse(raw)
			if err != nil {
				return true
			}
			return expr.Op.Valid()
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
