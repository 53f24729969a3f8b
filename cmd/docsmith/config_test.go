package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty path yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Port != 0 || cfg.LogLevel != "" || cfg.LogFile != "" {
			t.Errorf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "port: 8080\nlog_level: debug\nlog_file: /tmp/d.log\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Port != 8080 {
			t.Errorf("Port = %d, want 8080", cfg.Port)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigLoad) {
			t.Errorf("error = %v, want ErrConfigLoad", err)
		}
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("prot: 8080\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := loadConfig(path)
		if !errors.Is(err, ErrConfigLoad) {
			t.Errorf("error = %v, want ErrConfigLoad", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("port: [\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := loadConfig(path)
		if !errors.Is(err, ErrConfigLoad) {
			t.Errorf("error = %v, want ErrConfigLoad", err)
		}
	})
}

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	f, args, err := parseConvertFlags([]string{
		"--full-doc", "--title", "T", "md-to-html", "in.md", "out.html",
	})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}
	if !f.fullDoc {
		t.Error("fullDoc not set")
	}
	if f.title != "T" {
		t.Errorf("title = %q, want T", f.title)
	}
	if len(args) != 3 || args[0] != "md-to-html" {
		t.Errorf("positional args = %v", args)
	}
}

func TestParseServeFlags(t *testing.T) {
	t.Parallel()

	f, err := parseServeFlags("http", []string{"-p", "8080", "-v"})
	if err != nil {
		t.Fatalf("parseServeFlags() error = %v", err)
	}
	if f.port != 8080 {
		t.Errorf("port = %d, want 8080", f.port)
	}
	if !f.verbose {
		t.Error("verbose not set")
	}
}
