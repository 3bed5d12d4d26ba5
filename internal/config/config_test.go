package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/dragkit/internal/errors"
	"github.com/vango-dev/dragkit/pkg/drag"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.ScrollInterval() != drag.DefaultScrollInterval {
		t.Errorf("ScrollInterval() = %v, want %v", cfg.ScrollInterval(), drag.DefaultScrollInterval)
	}
	if cfg.Autoscroll.TriggerRange != drag.DefaultTriggerRange {
		t.Errorf("TriggerRange = %v, want %v", cfg.Autoscroll.TriggerRange, drag.DefaultTriggerRange)
	}
	if cfg.Clone.MaxRotation != drag.DefaultMaxRotation {
		t.Errorf("MaxRotation = %v, want %v", cfg.Clone.MaxRotation, drag.DefaultMaxRotation)
	}
	if cfg.ReadTimeout() != time.Minute {
		t.Errorf("ReadTimeout() = %v, want 1m", cfg.ReadTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if !stderrors.Is(err, errors.New(errors.CodeConfigRead)) {
		t.Errorf("missing file error = %v, want E100", err)
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Error("missing file error should wrap os.ErrNotExist")
	}

	writeConfig(t, tmpDir, `{
  "addr": ":9000",
  "logLevel": "debug",
  "autoscroll": {"interval": 250},
  "server": {"readTimeout": "5s"}
}
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q, want :9000", cfg.Addr)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
	if cfg.ScrollInterval() != 250*time.Millisecond {
		t.Errorf("ScrollInterval() = %v, want 250ms", cfg.ScrollInterval())
	}
	if cfg.Autoscroll.TriggerRange != drag.DefaultTriggerRange {
		t.Error("fields missing from the file keep their defaults")
	}
	if cfg.MetricsAddr != DefaultMetricsAddr {
		t.Errorf("MetricsAddr = %q, want default", cfg.MetricsAddr)
	}
	if cfg.ReadTimeout() != 5*time.Second {
		t.Errorf("ReadTimeout() = %v, want 5s", cfg.ReadTimeout())
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "{\n  \"addr\": ,\n}\n")

	_, err := Load(tmpDir)
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("error = %v, want *errors.Error", err)
	}
	if e.Code != errors.CodeConfigParse {
		t.Errorf("Code = %q, want %q", e.Code, errors.CodeConfigParse)
	}
	if e.Location == nil || e.Location.Line != 2 {
		t.Errorf("Location = %v, want line 2", e.Location)
	}
}

func TestLoadOptional(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadOptional(tmpDir)
	if err != nil || cfg.Addr != DefaultAddr {
		t.Fatalf("LoadOptional() without file = %+v, %v", cfg, err)
	}
	if Exists(tmpDir) {
		t.Error("Exists() = true for an empty directory")
	}

	writeConfig(t, tmpDir, `{"addr": ":7000"}`)
	cfg, err = LoadOptional(tmpDir)
	if err != nil || cfg.Addr != ":7000" {
		t.Errorf("LoadOptional() with file = %+v, %v", cfg, err)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantAddr    string
		wantMetrics string
		wantLevel   string
	}{
		{"no overrides", nil, DefaultAddr, DefaultMetricsAddr, DefaultLogLevel},
		{
			"all overrides",
			map[string]string{EnvAddr: ":1", EnvMetricsAddr: ":2", EnvLogLevel: "warn"},
			":1", ":2", "warn",
		},
		{"metrics off", map[string]string{EnvMetricsAddr: "off"}, DefaultAddr, "", DefaultLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.ApplyEnv(func(k string) string { return tt.env[k] })

			if cfg.Addr != tt.wantAddr || cfg.MetricsAddr != tt.wantMetrics || cfg.LogLevel != tt.wantLevel {
				t.Errorf("got addr=%q metrics=%q level=%q", cfg.Addr, cfg.MetricsAddr, cfg.LogLevel)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"negative interval", func(c *Config) { c.Autoscroll.Interval = -1 }},
		{"negative range", func(c *Config) { c.Autoscroll.TriggerRange = -5 }},
		{"negative rotation", func(c *Config) { c.Clone.MaxRotation = -2 }},
		{"bad timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if !stderrors.Is(err, errors.New(errors.CodeConfigInvalid)) {
				t.Errorf("Validate() = %v, want E102", err)
			}
		})
	}
}

func TestReadTimeoutFallback(t *testing.T) {
	cfg := New()
	cfg.Server.ReadTimeout = "bogus"
	if cfg.ReadTimeout() != time.Minute {
		t.Errorf("ReadTimeout() = %v, want the default", cfg.ReadTimeout())
	}
}

func TestDragOptions(t *testing.T) {
	cfg := New()
	if got := len(cfg.DragOptions()); got != 2 {
		t.Errorf("DragOptions() returned %d options, want 2", got)
	}
}
