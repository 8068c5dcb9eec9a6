package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AllowEmptyBlocks || cfg.OutputFormat != "" {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{
		AllowEmptyBlocks: true,
		BlockPath:        "result.body",
		OutputFormat:     "yaml",
		LogLevel:         "debug",
	}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "allow_empty_blocks: true") {
		t.Errorf("expected yaml key in file, got:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("allow_empty_blocks: [oops"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestSetAndUnset(t *testing.T) {
	cfg := &Config{}
	for key, value := range map[string]string{
		"allow_empty_blocks": "1",
		"block_path":         "data.body",
		"output_format":      " Table ",
		"log_level":          "WARN",
	} {
		if err := cfg.Set(key, value); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}
	want := Config{AllowEmptyBlocks: true, BlockPath: "data.body", OutputFormat: "table", LogLevel: "warn"}
	if *cfg != want {
		t.Fatalf("got %+v, want %+v", *cfg, want)
	}
	if got := cfg.Values()["output_format"]; got != "table" {
		t.Errorf("Values()[output_format] = %v", got)
	}

	for _, key := range Keys() {
		if err := cfg.Unset(key); err != nil {
			t.Fatalf("Unset(%s): %v", key, err)
		}
	}
	if *cfg != (Config{}) {
		t.Errorf("expected zero config, got %+v", *cfg)
	}
}

func TestSetRejectsBadInput(t *testing.T) {
	cfg := &Config{}
	for _, tc := range [][2]string{
		{"allow_empty_blocks", "sometimes"},
		{"output_format", "xml"},
		{"log_level", "loud"},
	} {
		if err := cfg.Set(tc[0], tc[1]); err == nil {
			t.Errorf("Set(%s, %s): expected error", tc[0], tc[1])
		}
	}

	err := cfg.Set("token", "x")
	var unknown UnknownKeyError
	if !errors.As(err, &unknown) || string(unknown) != "token" {
		t.Errorf("expected UnknownKeyError, got %v", err)
	}
	if err := cfg.Unset("token"); err == nil {
		t.Error("expected Unset error for unknown key")
	}
}
