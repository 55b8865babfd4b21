package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jij0517269/gongtan-duishu-tool/internal/config"
)

func TestInitConfig_DefaultFileBrokenFallsBackWithWarning(t *testing.T) {
	var logs bytes.Buffer
	broken := func() (*config.AppConfig, config.LoadConfigInfo, error) {
		return nil, config.LoadConfigInfo{}, errors.New("toml: invalid table header")
	}

	cfg, err := initConfig("", broken, &logs)
	if err != nil {
		t.Fatalf("initConfig: %v", err)
	}
	if cfg.Reconcile.Rounding != config.DefaultConfig().Reconcile.Rounding {
		t.Fatalf("expected default config, got %+v", cfg.Reconcile)
	}
	if !strings.Contains(logs.String(), "加载配置失败，使用默认配置") || !strings.Contains(logs.String(), "invalid table header") {
		t.Fatalf("missing fallback warning: %q", logs.String())
	}
}

func TestInitConfig_DefaultFileLoaded(t *testing.T) {
	var logs bytes.Buffer
	want := config.DefaultConfig()
	want.Reconcile.Rounding = "half_even"
	ok := func() (*config.AppConfig, config.LoadConfigInfo, error) {
		return want, config.LoadConfigInfo{}, nil
	}

	cfg, err := initConfig("", ok, &logs)
	if err != nil {
		t.Fatalf("initConfig: %v", err)
	}
	if cfg != want {
		t.Fatalf("expected loaded config")
	}
	if strings.Contains(logs.String(), "加载配置失败") {
		t.Fatalf("unexpected warning: %q", logs.String())
	}
}

func TestInitConfig_ExplicitPathBroken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	unused := func() (*config.AppConfig, config.LoadConfigInfo, error) {
		t.Fatalf("default loader should not be called")
		return nil, config.LoadConfigInfo{}, nil
	}

	if _, err := initConfig(path, unused, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for broken explicit config")
	}
}
