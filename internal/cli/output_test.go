package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/linecalc/internal/calc"
	"github.com/agbru/linecalc/internal/ui"
)

func TestFormatResultLine(t *testing.T) {
	tests := []struct {
		name      string
		expr      calc.Expression
		result    float64
		precision int
		want      string
	}{
		{
			name:      "integers default precision",
			expr:      calc.Expression{A: 5, B: 5, Op: calc.OpAdd},
			result:    10,
			precision: -1,
			want:      "5 + 5 = 10",
		},
		{
			name:      "fractional result",
			expr:      calc.Expression{A: 7, B: 2, Op: calc.OpDiv},
			result:    3.5,
			precision: -1,
			want:      "7 / 2 = 3.5",
		},
		{
			name:      "fixed precision applies to result only",
			expr:      calc.Expression{A: 10, B: 3, Op: calc.OpDiv},
			result:    10.0 / 3.0,
			precision: 2,
			want:      "10 / 3 = 3.33",
		},
		{
			name:      "negative operands",
			expr:      calc.Expression{A: -1.5, B: 2, Op: calc.OpMul},
			result:    -3,
			precision: -1,
			want:      "-1.5 * 2 = -3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatResultLine(tt.expr, tt.result, tt.precision)
			if got != tt.want {
				t.Errorf("FormatResultLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayError(t *testing.T) {
	original := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(original) })

	var buf bytes.Buffer
	_, err := calc.Parse("5 / 0")
	if err != nil {
		t.Fatalf("Parse failed unexpectedly: %v", err)
	}
	_, err = calc.Evaluate(5, 0, calc.OpDiv)
	DisplayError(&buf, err)

	got := buf.String()
	if !strings.HasPrefix(got, ErrorPrefix) {
		t.Errorf("output should start with %q, got %q", ErrorPrefix, got)
	}
	if !strings.Contains(got, "cannot divide by zero") {
		t.Errorf("output should carry the error description, got %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("output should end with a newline")
	}
}

func TestDisplayResult(t *testing.T) {
	original := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(original) })

	var buf bytes.Buffer
	DisplayResult(&buf, calc.Expression{A: 5, B: 5, Op: calc.OpAdd}, 10, -1)

	if got := buf.String(); got != "5 + 5 = 10\n" {
		t.Errorf("DisplayResult wrote %q, want %q", got, "5 + 5 = 10\n")
	}
}
