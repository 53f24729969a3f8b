package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	t.Run("round trip and cleanup", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := WriteTempFile("<p>hi</p>", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		if !strings.HasSuffix(path, ".html") {
			t.Errorf("path %q does not carry the extension", path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading temp file: %v", err)
		}
		if string(data) != "<p>hi</p>" {
			t.Errorf("content = %q", data)
		}

		cleanup()
		if FileExists(path) {
			t.Error("cleanup did not remove the file")
		}
	})

	t.Run("rejects unsafe extensions", func(t *testing.T) {
		t.Parallel()

		for _, ext := range []string{"", "a/b", `a\b`, "a\x00b"} {
			if _, _, err := WriteTempFile("x", ext); !errors.Is(err, ErrBadExtension) {
				t.Errorf("WriteTempFile(_, %q) error = %v, want ErrBadExtension", ext, err)
			}
		}
	})
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("existing file reported as absent")
	}
	if FileExists(dir) {
		t.Error("directory must not count as a file")
	}
	if FileExists(filepath.Join(dir, "absent.txt")) {
		t.Error("missing path reported as present")
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.com", true},
		{"http://example.com/page", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"/tmp/file.html", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.input); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
