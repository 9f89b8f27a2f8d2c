package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// TempPattern is the name pattern of the temporary files FilesystemSink
// renames into place. Leftovers from a crashed run match it.
const TempPattern = ".krpcgen-*.tmp"

// FilesystemSink writes to a directory on the local filesystem.
// Every write goes to a temporary file that is renamed over the target, so a
// failed run never leaves a truncated output file behind.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite controls behavior for existing files.
	// If false, returns an error when a file exists.
	Overwrite bool
}

// NewFilesystemSink creates a FilesystemSink writing to root.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{
		Root:      root,
		Mode:      0644,
		Overwrite: true,
	}
}

// WriteFile writes content to path within the root directory, creating
// parent directories as needed.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create directories")
	}

	tmp, err := s.writeTemp(dir, content)
	if err != nil {
		return err
	}
	// Removing a renamed temp file fails harmlessly.
	defer func() { _ = os.Remove(tmp) }()

	if err := ctx.Err(); err != nil {
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tmp, fullPath); err != nil {
			return errors.Wrap(err, "failed to rename temp file")
		}
		return nil
	}

	// Link fails with EEXIST instead of replacing the target.
	if err := os.Link(tmp, fullPath); err != nil {
		if os.IsExist(err) {
			return errors.Errorf("file already exists: %q", path)
		}
		return errors.Wrap(err, "failed to create file")
	}
	return nil
}

// resolve joins path onto Root and rejects results outside of it.
func (s *FilesystemSink) resolve(path string) (string, error) {
	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve root directory")
	}
	absPath, err := filepath.Abs(filepath.Join(s.Root, filepath.FromSlash(path)))
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve path")
	}
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", errors.Errorf("path escapes root directory: %q", path)
	}
	return absPath, nil
}

// writeTemp writes content to a new temp file in dir and returns its name.
// The file is removed again on failure.
func (s *FilesystemSink) writeTemp(dir string, content []byte) (string, error) {
	f, err := os.CreateTemp(dir, TempPattern)
	if err != nil {
		return "", errors.Wrap(err, "failed to create temp file")
	}
	name := f.Name()

	_, writeErr := f.Write(content)
	closeErr := f.Close()
	switch {
	case writeErr != nil:
		err = errors.Wrap(writeErr, "failed to write temp file")
	case closeErr != nil:
		err = errors.Wrap(closeErr, "failed to close temp file")
	default:
		mode := s.Mode
		if mode == 0 {
			mode = 0644
		}
		if chmodErr := os.Chmod(name, mode); chmodErr != nil {
			err = errors.Wrap(chmodErr, "failed to set file mode")
		}
	}
	if err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}
