package logging

import (
	"bytes"
	"io"
	"sync"
)

// PrefixWriter writes prefix before every complete line. Partial lines are
// held until a newline arrives or Flush is called.
type PrefixWriter struct {
	mu     sync.Mutex
	prefix []byte
	writer io.Writer
	buffer bytes.Buffer
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{
		prefix: []byte(prefix),
		writer: w,
	}
}

// Write implements io.Writer. The returned count is len(p) once p is buffered.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	pw.buffer.Write(p)

	for {
		i := bytes.IndexByte(pw.buffer.Bytes(), '\n')
		if i < 0 {
			break
		}
		if err := pw.emit(pw.buffer.Next(i + 1)); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

// Flush writes any buffered partial line, prefixed and without a newline.
func (pw *PrefixWriter) Flush() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.buffer.Len() == 0 {
		return nil
	}
	return pw.emit(pw.buffer.Next(pw.buffer.Len()))
}

func (pw *PrefixWriter) emit(line []byte) error {
	if _, err := pw.writer.Write(pw.prefix); err != nil {
		return err
	}
	_, err := pw.writer.Write(line)
	return err
}
