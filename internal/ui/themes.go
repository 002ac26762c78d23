package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for terminal output. Each field contains an
// ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Prompt is the color of the input prompt.
	Prompt string
	// Result is the color used for calculation results.
	Result string
	// Operator is the accent color for operators and commands.
	Operator string
	// Error indicates failures.
	Error string
	// Info is used for informational messages.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:     "dark",
		Prompt:   "\033[38;5;82m",  // Bright green
		Result:   "\033[38;5;39m",  // Bright blue
		Operator: "\033[38;5;220m", // Yellow
		Error:    "\033[38;5;196m", // Red
		Info:     "\033[38;5;245m", // Grey
		Bold:     "\033[1m",
		Reset:    "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:     "light",
		Prompt:   "\033[38;5;28m",  // Dark green
		Result:   "\033[38;5;27m",  // Dark blue
		Operator: "\033[38;5;130m", // Orange
		Error:    "\033[38;5;124m", // Dark red
		Info:     "\033[38;5;240m", // Dark grey
		Bold:     "\033[1m",
		Reset:    "\033[0m",
	}

	// NoColorTheme disables all color output. Used when NO_COLOR is set or
	// --no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}

	// currentTheme is the active theme used throughout the application.
	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines lipgloss-compatible colors for the TUI calculator.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Result  lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default TUI palette.
	DarkTUITheme = TUITheme{
		Text:   lipgloss.Color("#E0E0E0"),
		Border: lipgloss.Color("#5FAFFF"),
		Accent: lipgloss.Color("#FFD75F"),
		Result: lipgloss.Color("#9ece6a"),
		Error:  lipgloss.Color("#FF4444"),
		Dim:    lipgloss.Color("#666666"),
	}

	// NoColorTUITheme disables all TUI colors. lipgloss.NoColor{} renders
	// text with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:   lipgloss.NoColor{},
		Border: lipgloss.NoColor{},
		Accent: lipgloss.NoColor{},
		Result: lipgloss.NoColor{},
		Error:  lipgloss.NoColor{},
		Dim:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the TUI theme matching the currently active
// theme. When NoColorTheme is active, returns NoColorTUITheme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if currentTheme.Name == "none" {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name. Valid names are "dark",
// "light" and "none"; unknown names default to dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme initializes the theme based on the noColor flag and
// environment. It respects the NO_COLOR environment variable
// (https://no-color.org/) for accessibility.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}

	// Any non-empty NO_COLOR value disables colors (per no-color.org spec).
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}

	currentTheme = DarkTheme
}
