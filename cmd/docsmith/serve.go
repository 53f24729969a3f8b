package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-docsmith/internal/registry"
	"github.com/alnah/go-docsmith/internal/server"
)

// runHTTP handles `docsmith http`: health endpoint, SSE transport and the
// REST conversion endpoints, until SIGINT/SIGTERM.
func runHTTP(args []string) error {
	f, err := parseServeFlags("http", args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(f.config)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, logLevel(cfg, f.verbose))
	registry.Init(logger)

	port := f.port
	if port == 0 && cfg.Port > 0 {
		port = cfg.Port
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return server.ListenAndServe(ctx, server.ResolvePort(port), logger)
}

// runStdio handles `docsmith stdio`. Stdout carries the protocol, so logs
// go to a file under ~/.docsmith/logs, or nowhere if that fails.
func runStdio(args []string) error {
	f, err := parseServeFlags("stdio", args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(f.config)
	if err != nil {
		return err
	}

	out, cleanup := stdioLogWriter(cfg.LogFile)
	defer cleanup()

	logger := newLogger(out, logLevel(cfg, f.verbose))
	registry.Init(logger)

	return server.ServeStdio()
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger
}

// logLevel resolves the log level: LOG_LEVEL env, then config file, then
// the verbose flag, then info.
func logLevel(cfg *cliConfig, verbose bool) logrus.Level {
	name := os.Getenv("LOG_LEVEL")
	if name == "" {
		name = cfg.LogLevel
	}
	if name != "" {
		if level, err := logrus.ParseLevel(name); err == nil {
			return level
		}
	}
	if verbose {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}

// stdioLogWriter opens the stdio-mode log file. Any failure falls back to
// discarding logs; stdio mode must never write diagnostics to stdout or
// stderr once the protocol is live.
func stdioLogWriter(path string) (io.Writer, func()) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return io.Discard, func() {}
		}
		path = filepath.Join(home, ".docsmith", "logs", "docsmith.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard, func() {}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return file, func() { _ = file.Close() }
}
