package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, info, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if info.PortSpecified {
		t.Fatalf("port should not be marked as specified")
	}
	want := DefaultConfig()
	if cfg.Billing != want.Billing || cfg.Formula != want.Formula {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Formula.MinBuilding != 1 || cfg.Formula.MaxBuilding != 34 || cfg.Formula.FirstDataRow != 12 {
		t.Fatalf("unexpected formula defaults: %+v", cfg.Formula)
	}
}

func TestLoadConfigFrom_TomlOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
port = 18080

[reconcile]
rounding = "half_even"
match_workers = 4

[formula]
first_data_row = 3
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, info, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if !info.PortSpecified || cfg.Server.Port != 18080 {
		t.Fatalf("port not applied: %+v %+v", info, cfg.Server)
	}
	if cfg.Reconcile.Rounding != "half_even" || cfg.Reconcile.MatchWorkers != 4 {
		t.Fatalf("reconcile not applied: %+v", cfg.Reconcile)
	}
	if cfg.Formula.FirstDataRow != 3 || cfg.Formula.SheetSuffix != "栋" {
		t.Fatalf("formula merge wrong: %+v", cfg.Formula)
	}
}

func TestLoadConfigFrom_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GONGTAN_ROUNDING=half_even\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("GONGTAN_PORT", "19999")
	t.Setenv("GONGTAN_DATA_DIR", filepath.Join(dir, "d"))
	t.Setenv("GONGTAN_ROUNDING", "")
	t.Setenv("LOG_LEVEL", "debug")
	os.Unsetenv("GONGTAN_ROUNDING")

	cfg, info, err := LoadConfigFrom(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.Server.Port != 19999 || !info.PortSpecified {
		t.Fatalf("env port not applied: %+v", cfg.Server)
	}
	if cfg.Data.DataDir != filepath.Join(dir, "d") {
		t.Fatalf("env data dir not applied: %s", cfg.Data.DataDir)
	}
	if cfg.Reconcile.Rounding != "half_even" {
		t.Fatalf(".env rounding not applied: %s", cfg.Reconcile.Rounding)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level: %s", cfg.Log.Level)
	}
}

func TestLoadConfigFrom_InvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := LoadConfigFrom(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
