package main

import (
	"fmt"
	"os"

	"github.com/alnah/go-docsmith/internal/yamlutil"
)

// cliConfig holds optional server defaults loaded from a YAML config file.
// Flags and environment variables take precedence over file values.
type cliConfig struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// loadConfig reads the config file when a path is given. A missing path is
// not an error; a named file that cannot be read or parsed is.
func loadConfig(path string) (*cliConfig, error) {
	cfg := &cliConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
	}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
	}
	return cfg, nil
}
