package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build information, set at link time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// HasVersionFlag reports whether the arguments request version output.
// Checked before flag parsing so --version works regardless of other
// arguments.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the build information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "linecalc %s\n", Version)
	fmt.Fprintf(w, "  commit: %s\n", Commit)
	fmt.Fprintf(w, "  built:  %s\n", Date)
	fmt.Fprintf(w, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
