package ui

// Accessor functions return the escape codes of the active theme. Callers
// compose output as Color*() + text + ColorReset() so that switching to the
// no-color theme degrades to plain text.

// ColorPrompt returns the prompt color of the active theme.
func ColorPrompt() string { return GetCurrentTheme().Prompt }

// ColorResult returns the result color of the active theme.
func ColorResult() string { return GetCurrentTheme().Result }

// ColorOperator returns the operator accent color of the active theme.
func ColorOperator() string { return GetCurrentTheme().Operator }

// ColorError returns the error color of the active theme.
func ColorError() string { return GetCurrentTheme().Error }

// ColorInfo returns the informational color of the active theme.
func ColorInfo() string { return GetCurrentTheme().Info }

// ColorBold returns the bold escape code of the active theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the reset escape code of the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }
