// This file contains the TOML configuration file layer.

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/linecalc/internal/errors"
)

// DefaultConfigFileName is the configuration file looked up in the user's
// home directory when --config is not given.
const DefaultConfigFileName = ".linecalc.toml"

// fileConfig mirrors the subset of AppConfig that may be persisted in the
// configuration file. Pointer fields distinguish "absent" from zero values.
type fileConfig struct {
	Precision   *int    `toml:"precision"`
	HistorySize *int    `toml:"history_size"`
	Timeout     *string `toml:"timeout"`
	Quiet       *bool   `toml:"quiet"`
	NoColor     *bool   `toml:"no_color"`
	FailFast    *bool   `toml:"fail_fast"`
	MetricsAddr *string `toml:"metrics_addr"`
	Theme       *string `toml:"theme"`
}

// DefaultConfigFilePath returns the default configuration file location,
// or the empty string when the home directory cannot be determined.
func DefaultConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultConfigFileName)
}

// loadConfigFile merges values from the TOML configuration file into cfg.
// A missing file is not an error; a malformed one is, since silently
// ignoring it would hide the user's mistake.
func loadConfigFile(cfg *AppConfig) error {
	path := cfg.ConfigFile
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilePath()
		if path == "" {
			return nil
		}
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return apperrors.NewConfigError("config file %q does not exist", path)
			}
			return nil
		}
		return apperrors.WrapError(err, "parsing config file %q", path)
	}

	if fc.Precision != nil {
		cfg.Precision = *fc.Precision
	}
	if fc.HistorySize != nil {
		cfg.HistorySize = *fc.HistorySize
	}
	if fc.Timeout != nil {
		if d, err := time.ParseDuration(*fc.Timeout); err == nil {
			cfg.Timeout = d
		} else {
			return apperrors.NewConfigError("invalid timeout %q in config file %q", *fc.Timeout, path)
		}
	}
	if fc.Quiet != nil {
		cfg.Quiet = *fc.Quiet
	}
	if fc.NoColor != nil {
		cfg.NoColor = *fc.NoColor
	}
	if fc.FailFast != nil {
		cfg.FailFast = *fc.FailFast
	}
	if fc.MetricsAddr != nil {
		cfg.MetricsAddr = *fc.MetricsAddr
	}
	if fc.Theme != nil && *fc.Theme == "none" {
		cfg.NoColor = true
	}
	return nil
}
