// Package fileutil holds small filesystem helpers shared by the render
// stages and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrBadExtension rejects temp-file extensions that are empty or contain
// path separators.
var ErrBadExtension = errors.New("invalid file extension")

// WriteTempFile writes content to a fresh temp file named with the given
// extension. It returns the file path and a cleanup func that removes the
// file; cleanup is safe to call on every exit path.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if extension == "" || strings.ContainsAny(extension, "/\\\x00") {
		return "", nil, fmt.Errorf("%w: %q", ErrBadExtension, extension)
	}

	f, err := os.CreateTemp("", "docsmith-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", err)
	}
	return path, cleanup, nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
