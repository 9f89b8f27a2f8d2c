package sink

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// WriterSink streams every file to a single io.Writer, such as stdout.
// The path is validated but otherwise ignored.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteFile writes content to the underlying writer.
func (s *WriterSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(content); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
