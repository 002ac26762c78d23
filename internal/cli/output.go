// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on
// their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.

package cli

import (
	"fmt"
	"io"

	"github.com/agbru/linecalc/internal/calc"
	"github.com/agbru/linecalc/internal/format"
	"github.com/agbru/linecalc/internal/ui"
)

// ErrorPrefix is prepended to every failure description surfaced to the
// user's error stream.
const ErrorPrefix = "Error: "

// FormatResultLine renders the canonical result line for an evaluated
// expression: "<num1> <operator> <num2> = <result>". Operands are shown as
// entered (input order, default rendering); the result honors the
// configured precision.
func FormatResultLine(expr calc.Expression, result float64, precision int) string {
	return fmt.Sprintf("%s %s %s = %s",
		format.Number(expr.A, -1),
		expr.Op,
		format.Number(expr.B, -1),
		format.Number(result, precision))
}

// DisplayResult writes the colorized result line for an evaluated
// expression.
func DisplayResult(out io.Writer, expr calc.Expression, result float64, precision int) {
	fmt.Fprintf(out, "%s %s%s%s %s = %s%s%s\n",
		format.Number(expr.A, -1),
		ui.ColorOperator(), expr.Op, ui.ColorReset(),
		format.Number(expr.B, -1),
		ui.ColorResult(), format.Number(result, precision), ui.ColorReset())
}

// DisplayError writes a failure description to the error stream, prefixed
// and colorized. The description is surfaced verbatim after the prefix.
func DisplayError(errOut io.Writer, err error) {
	fmt.Fprintf(errOut, "%s%s%v%s\n", ui.ColorError(), ErrorPrefix, err, ui.ColorReset())
}
