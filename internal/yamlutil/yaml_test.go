package yamlutil

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type testConfig struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("decodes known fields", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := UnmarshalStrict([]byte("port: 8080\nlog_level: debug\n"), &cfg)
		if err != nil {
			t.Fatalf("UnmarshalStrict() error = %v", err)
		}
		if cfg.Port != 8080 || cfg.LogLevel != "debug" {
			t.Errorf("decoded %+v", cfg)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := UnmarshalStrict([]byte("prot: 8080\n"), &cfg)
		if err == nil {
			t.Fatal("unknown field must be rejected")
		}
		if !strings.Contains(err.Error(), "prot") {
			t.Errorf("error %q does not name the unknown field", err)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := UnmarshalStrict([]byte("port: [\n"), &cfg); err == nil {
			t.Fatal("malformed YAML must be rejected")
		}
	})

	t.Run("empty data", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := UnmarshalStrict(nil, &cfg); !errors.Is(err, ErrNoData) {
			t.Errorf("error = %v, want ErrNoData", err)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		if err := UnmarshalStrict([]byte("port: 1\n"), nil); !errors.Is(err, ErrNilDestination) {
			t.Errorf("error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("oversized input", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		big := bytes.Repeat([]byte("#"), MaxInputSize+1)
		if err := UnmarshalStrict(big, &cfg); !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})
}
