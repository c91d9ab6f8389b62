package compress

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/provide-io/huffcrypt/pkg/operations"
)

func init() {
	operations.Register(NewGzipOperation())
}

// GzipOperation implements GZIP compression at BestCompression; envelope
// bodies are small and written once.
type GzipOperation struct {
	operations.BaseOperation
}

// NewGzipOperation creates a new GZIP operation
func NewGzipOperation() *GzipOperation {
	return &GzipOperation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_GZIP,
			OpName: "GZIP",
		},
	}
}

func newGzipWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriterLevel(w, gzip.BestCompression)
}

// Apply compresses data using GZIP
func (o *GzipOperation) Apply(input []byte) ([]byte, error) {
	return compressAll(input, newGzipWriter)
}

// ApplyStream compresses a stream using GZIP
func (o *GzipOperation) ApplyStream(input io.Reader, output io.Writer) error {
	return compressStream(input, output, newGzipWriter)
}

// Reverse decompresses GZIP data up to MaxDecompressedSize
func (o *GzipOperation) Reverse(input []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gr.Close()

	data, err := readAllLimited(gr)
	if err != nil {
		return nil, fmt.Errorf("reading gzip data: %w", err)
	}
	return data, nil
}

// ReverseStream decompresses a GZIP stream
func (o *GzipOperation) ReverseStream(input io.Reader, output io.Writer) error {
	gr, err := gzip.NewReader(input)
	if err != nil {
		return fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gr.Close()

	if _, err := io.Copy(output, gr); err != nil {
		return fmt.Errorf("decompressing stream: %w", err)
	}
	return nil
}

// EstimateSize estimates compressed size
func (o *GzipOperation) EstimateSize(inputSize int64) int64 {
	// CBOR envelopes are mostly base64 text and binary-digit strings
	return (inputSize*8)/10 + 18 // +18 for gzip header/trailer
}
