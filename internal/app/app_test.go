package app

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/linecalc/internal/errors"
)

func writeScriptFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calc.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing script file: %v", err)
	}
	return path
}

func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var errBuf bytes.Buffer
	a, err := New(append([]string{"linecalc"}, args...), &errBuf)
	if err != nil {
		t.Fatalf("New(%v) returned error: %v\nstderr: %s", args, err, errBuf.String())
	}
	return a
}

func TestNew_InvalidFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var errBuf bytes.Buffer
	if _, err := New([]string{"linecalc", "--precision", "99"}, &errBuf); err == nil {
		t.Error("expected an error for an out-of-range precision")
	}
	if !strings.Contains(errBuf.String(), "must be between -1 and 17") {
		t.Errorf("errWriter = %q, want the validation message", errBuf.String())
	}
}

func TestNew_HelpFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var errBuf bytes.Buffer
	_, err := New([]string{"linecalc", "--help"}, &errBuf)
	if !IsHelpError(err) {
		t.Errorf("expected a help error, got %v", err)
	}
}

func TestRun_OneShot(t *testing.T) {
	a := newTestApp(t, "-e", "5 + 5", "--no-color")
	var out bytes.Buffer

	code := a.Run(context.Background(), &out)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if got := strings.TrimSpace(out.String()); got != "5 + 5 = 10" {
		t.Errorf("output = %q, want %q", got, "5 + 5 = 10")
	}
}

func TestRun_OneShotErrors(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		contains string
	}{
		{"parse failure", "5 +", "expected 3 parts"},
		{"division by zero", "5 / 0", "cannot divide by zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			var errBuf bytes.Buffer
			a, err := New([]string{"linecalc", "-e", tt.expr, "--no-color"}, &errBuf)
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			var out bytes.Buffer

			code := a.Run(context.Background(), &out)

			if code != apperrors.ExitErrorGeneric {
				t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
			}
			errText := errBuf.String()
			if !strings.HasPrefix(errText, "Error: ") {
				t.Errorf("error output should start with %q, got %q", "Error: ", errText)
			}
			if !strings.Contains(errText, tt.contains) {
				t.Errorf("error output should contain %q, got %q", tt.contains, errText)
			}
			if out.Len() != 0 {
				t.Errorf("stdout should be empty on failure, got %q", out.String())
			}
		})
	}
}

func TestRun_OneShotPrecision(t *testing.T) {
	a := newTestApp(t, "-e", "10 / 3", "--precision", "2", "--no-color")
	var out bytes.Buffer

	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if got := strings.TrimSpace(out.String()); got != "10 / 3 = 3.33" {
		t.Errorf("output = %q, want %q", got, "10 / 3 = 3.33")
	}
}

func TestRun_Completion(t *testing.T) {
	a := newTestApp(t, "--completion", "bash")
	var out bytes.Buffer

	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "_linecalc_completions") {
		t.Error("completion output should contain the bash function")
	}
}

func TestRun_Script(t *testing.T) {
	script := writeScriptFile(t, "5 + 5\n7 / 2\n")

	a := newTestApp(t, "-f", script, "-q", "--no-color")
	var out bytes.Buffer

	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "5 + 5 = 10") || !strings.Contains(out.String(), "7 / 2 = 3.5") {
		t.Errorf("output missing results:\n%s", out.String())
	}
}

func TestRun_ScriptWithFailures(t *testing.T) {
	script := writeScriptFile(t, "5 / 0\n")

	t.Setenv("HOME", t.TempDir())
	var errBuf bytes.Buffer
	a, err := New([]string{"linecalc", "-f", script, "-q", "--no-color"}, &errBuf)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	var out bytes.Buffer

	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
}

func TestRun_ScriptMissingFile(t *testing.T) {
	a := newTestApp(t, "-f", t.TempDir()+"/absent.txt", "-q")
	var out bytes.Buffer

	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorIO {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorIO)
	}
}

func TestIsHelpError(t *testing.T) {
	if !IsHelpError(flag.ErrHelp) {
		t.Error("flag.ErrHelp should be a help error")
	}
	if IsHelpError(errors.New("other")) {
		t.Error("arbitrary errors are not help errors")
	}
	if IsHelpError(nil) {
		t.Error("nil is not a help error")
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-e", "5 + 5", "--version"}, true},
		{[]string{"-e", "5 + 5"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)

	out := buf.String()
	if !strings.Contains(out, "linecalc") {
		t.Error("version output should contain the program name")
	}
	if !strings.Contains(out, Version) {
		t.Error("version output should contain the version string")
	}
}
