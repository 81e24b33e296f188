package sink

import (
	"fmt"
	"io"
)

// Writer is a push backend writing interleaved PCM blocks to an io.Writer,
// the shape of a device file or a capture file. Drain syncs the destination
// when it supports it.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w as a push backend.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (s *Writer) WriteBlock(block []byte) error {
	if _, err := s.w.Write(block); err != nil {
		return fmt.Errorf("write audio block: %w", err)
	}
	return nil
}

func (s *Writer) Drain() error {
	// Best effort: pipes and terminals refuse fsync, and every write has
	// already been pushed to the destination by WriteBlock.
	if f, ok := s.w.(interface{ Sync() error }); ok {
		_ = f.Sync()
	}
	return nil
}

func (s *Writer) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
