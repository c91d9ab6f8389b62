// Package compress registers the compression operations available for
// sealed envelope bodies.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// MaxDecompressedSize bounds the output of every Reverse call. An envelope
// holds one text and its code table, so anything larger is rejected.
const MaxDecompressedSize = 64 << 20

// ErrTooLarge is returned when decompressed data exceeds MaxDecompressedSize.
var ErrTooLarge = errors.New("decompressed data exceeds size limit")

// readAllLimited reads r to EOF, failing once MaxDecompressedSize is passed.
func readAllLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDecompressedSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDecompressedSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

// compressAll copies input through a compressing writer into memory.
func compressAll(input []byte, newWriter func(io.Writer) (io.WriteCloser, error)) ([]byte, error) {
	var buf bytes.Buffer
	if err := compressStream(bytes.NewReader(input), &buf, newWriter); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compressStream(input io.Reader, output io.Writer, newWriter func(io.Writer) (io.WriteCloser, error)) error {
	w, err := newWriter(output)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	if _, err := io.Copy(w, input); err != nil {
		w.Close()
		return fmt.Errorf("compressing stream: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing writer: %w", err)
	}
	return nil
}
