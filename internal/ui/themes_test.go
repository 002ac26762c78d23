package ui

import (
	"os"
	"testing"
)

// TestSetTheme tests theme selection by name.
func TestSetTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"bogus", "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetTheme(tt.name)
			if got := GetCurrentTheme().Name; got != tt.want {
				t.Errorf("SetTheme(%q) -> theme %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

// TestInitTheme tests color initialization with the noColor flag and the
// NO_COLOR environment variable.
func TestInitTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	t.Run("noColor flag disables colors", func(t *testing.T) {
		InitTheme(true)
		if GetCurrentTheme().Name != "none" {
			t.Error("InitTheme(true) should activate the no-color theme")
		}
		if ColorError() != "" || ColorReset() != "" {
			t.Error("no-color theme should return empty escape codes")
		}
	})

	t.Run("NO_COLOR env disables colors", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		InitTheme(false)
		if GetCurrentTheme().Name != "none" {
			t.Error("NO_COLOR should activate the no-color theme")
		}
	})

	t.Run("defaults to dark theme", func(t *testing.T) {
		// t.Setenv registers restoration of the previous value; the
		// variable must then be removed entirely, since any presence of
		// NO_COLOR disables colors.
		t.Setenv("NO_COLOR", "placeholder")
		os.Unsetenv("NO_COLOR")
		InitTheme(false)
		if GetCurrentTheme().Name != "dark" {
			t.Errorf("default theme = %q, want dark", GetCurrentTheme().Name)
		}
	})
}

// TestGetCurrentTUITheme verifies TUI palette selection follows the active
// theme.
func TestGetCurrentTUITheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetTheme("none")
	if GetCurrentTUITheme() != NoColorTUITheme {
		t.Error("no-color theme should map to NoColorTUITheme")
	}

	SetTheme("dark")
	if GetCurrentTUITheme() != DarkTUITheme {
		t.Error("dark theme should map to DarkTUITheme")
	}
}
