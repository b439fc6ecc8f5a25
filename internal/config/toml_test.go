package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Analysis.SessionGap != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
	if cfg.ModifierRoles() != nil {
		t.Fatalf("expected nil modifier roles for empty config")
	}
}

func TestLoadConfigParsesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[analysis]
session-gap = 30.0
tap-time-ms = 180.0

[modifiers.KEY_D]
role = "shift"
targets = ["KEY_U", "KEY_I"]

[modifiers.KEY_F]
role = "ctrl"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Analysis.SessionGap == nil || *cfg.Analysis.SessionGap != 30 {
		t.Fatalf("unexpected session gap: %+v", cfg.Analysis)
	}
	if cfg.Analysis.TapTimeMs == nil || *cfg.Analysis.TapTimeMs != 180 {
		t.Fatalf("unexpected tap time: %+v", cfg.Analysis)
	}
	if cfg.Analysis.LongHoldThresholdMs != nil {
		t.Fatalf("absent key should stay nil: %+v", cfg.Analysis)
	}

	roles := cfg.ModifierRoles()
	if len(roles) != 2 {
		t.Fatalf("expected 2 modifier roles, got %v", roles)
	}
	d := roles["KEY_D"]
	if !d.ShiftLike() {
		t.Fatalf("KEY_D should be shift-like: %+v", d)
	}
	if _, ok := d.Targets["KEY_U"]; !ok {
		t.Fatalf("missing target in %v", d.Targets)
	}
	if roles["KEY_F"].ShiftLike() {
		t.Fatalf("ctrl role should not be shift-like")
	}
}

func TestLoadConfigRejectsInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[analysis\nsession-gap = ???"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
