// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/avolkov/keyprof/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analysis  AnalysisConfig            `toml:"analysis"`
	Modifiers map[string]ModifierConfig `toml:"modifiers"`
}

// AnalysisConfig maps engine threshold settings. Pointer fields
// distinguish "absent" from zero so defaults apply per key.
type AnalysisConfig struct {
	SessionGap           *float64 `toml:"session-gap"`
	LongHoldThresholdMs  *float64 `toml:"long-hold-ms"`
	TapTimeMs            *float64 `toml:"tap-time-ms"`
	FatigueWindowMinutes *float64 `toml:"fatigue-window-min"`
}

// ModifierConfig declares one dual-role key.
type ModifierConfig struct {
	Role    string   `toml:"role"`
	Targets []string `toml:"targets"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ModifierRoles converts the configured modifier table to the model
// representation. Returns nil when the file declares no modifiers, so
// the caller can fall back to the default table.
func (c FileConfig) ModifierRoles() map[string]model.ModifierRole {
	if len(c.Modifiers) == 0 {
		return nil
	}
	out := make(map[string]model.ModifierRole, len(c.Modifiers))
	for key, mc := range c.Modifiers {
		role := model.ModifierRole{Role: mc.Role}
		if len(mc.Targets) > 0 {
			role.Targets = make(map[string]struct{}, len(mc.Targets))
			for _, t := range mc.Targets {
				role.Targets[t] = struct{}{}
			}
		}
		out[key] = role
	}
	return out
}
