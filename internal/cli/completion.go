package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding a
// new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "precision")
	Short     string   // short flag without "-" (e.g., "q")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "digits")
	IsFile    bool     // true if the flag takes a file path
}

// flagRegistry is the central list of all CLI flags for completion
// generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "e", Help: "Evaluate a single expression and exit", ValueName: "expression"},
	{Short: "f", Help: "Evaluate expressions from a file", IsFile: true, ValueName: "file"},
	{Long: "tui", Help: "Launch the full-screen calculator"},
	{Long: "quiet", Short: "q", Help: "Only print results and errors"},
	{Long: "verbose", Short: "v", Help: "Enable debug logging"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "precision", Help: "Digits after the decimal point", Values: []string{"0", "2", "4", "8", "15"}, ValueName: "digits"},
	{Long: "history-size", Help: "Maximum REPL history entries", Values: []string{"50", "100", "500", "1000"}, ValueName: "entries"},
	{Long: "fail-fast", Help: "Stop script evaluation at the first error"},
	{Long: "timeout", Help: "Maximum evaluation time", Values: []string{"10s", "30s", "1m", "5m"}, ValueName: "duration"},
	{Long: "metrics-addr", Help: "Prometheus metrics listen address", ValueName: "address"},
	{Long: "config", Help: "TOML configuration file", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified
// shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	case "powershell", "ps":
		return generatePowerShellCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer) error {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	var caseBody strings.Builder
	for _, f := range flagRegistry {
		var patterns []string
		if f.Long != "" {
			patterns = append(patterns, "--"+f.Long)
		}
		if f.Short != "" {
			patterns = append(patterns, "-"+f.Short)
		}

		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}

		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(patterns, "|"))
		caseBody.WriteString(")\n            ")
		caseBody.WriteString(body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	script := fmt.Sprintf(`# Bash completion script for linecalc
# Add this to your ~/.bashrc or ~/.bash_completion

_linecalc_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _linecalc_completions linecalc
`, strings.Join(opts, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// zshArgEntry renders one flag as a zsh _arguments specification.
func zshArgEntry(f FlagCompletion) string {
	name := "--" + f.Long
	if f.Long == "" {
		name = "-" + f.Short
	}

	switch {
	case f.IsFile:
		return fmt.Sprintf("    '%s[%s]:%s:_files'", name, f.Help, f.ValueName)
	case len(f.Values) > 0:
		return fmt.Sprintf("    '%s[%s]:%s:(%s)'", name, f.Help, f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		return fmt.Sprintf("    '%s[%s]:%s:'", name, f.Help, f.ValueName)
	default:
		return fmt.Sprintf("    '%s[%s]'", name, f.Help)
	}
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef linecalc

# Zsh completion script for linecalc
# Add this to your ~/.zshrc or place in $fpath

_linecalc() {
    _arguments -s \
%s
}

_linecalc "$@"
`, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer) error {
	var b strings.Builder
	b.WriteString("# Fish completion script for linecalc\n")
	b.WriteString("# Place in ~/.config/fish/completions/linecalc.fish\n\n")

	for _, f := range flagRegistry {
		line := "complete -c linecalc"
		if f.Long != "" {
			line += " -l " + f.Long
		}
		if f.Short != "" {
			line += " -s " + f.Short
		}
		if f.IsFile {
			line += " -r -F"
		} else if len(f.Values) > 0 {
			line += fmt.Sprintf(" -x -a \"%s\"", strings.Join(f.Values, " "))
		}
		line += fmt.Sprintf(" -d \"%s\"", f.Help)
		b.WriteString(line + "\n")
	}

	if _, err := fmt.Fprint(out, b.String()); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer) error {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "'--"+f.Long+"'")
		}
		if f.Short != "" {
			opts = append(opts, "'-"+f.Short+"'")
		}
	}

	script := fmt.Sprintf(`# PowerShell completion script for linecalc
# Add this to your PowerShell profile

Register-ArgumentCompleter -Native -CommandName linecalc -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $options = @(%s)
    $options | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`, strings.Join(opts, ", "))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion powershell generation failed: %w", err)
	}
	return nil
}
