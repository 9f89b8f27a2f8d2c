// Package sink provides output destinations for generated code.
package sink

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// OutputSink receives generated file content.
// Implementations must be safe for concurrent calls.
type OutputSink interface {
	// WriteFile writes content to the specified path.
	// The path is relative; the sink determines the actual location.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// ValidatePath checks if a path is valid for output.
// Paths must be relative, use / as separator, be clean, and must not
// contain .. components.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") || isDriveLetter(path) {
		return errors.New("absolute paths not allowed")
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	if cleaned := filepath.ToSlash(filepath.Clean(path)); cleaned != filepath.ToSlash(path) {
		return errors.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}

func isDriveLetter(path string) bool {
	if len(path) < 2 || path[1] != ':' {
		return false
	}
	c := path[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
