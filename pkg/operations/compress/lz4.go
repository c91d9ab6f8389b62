package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/provide-io/huffcrypt/pkg/operations"
)

func init() {
	operations.Register(NewLZ4Operation())
}

// LZ4Operation implements LZ4 frame compression. The frame format carries
// its own content size, so no side channel is needed to decompress.
type LZ4Operation struct {
	operations.BaseOperation
}

// NewLZ4Operation creates a new LZ4 operation
func NewLZ4Operation() *LZ4Operation {
	return &LZ4Operation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_LZ4,
			OpName: "LZ4",
		},
	}
}

func newLZ4Writer(w io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(w), nil
}

// Apply compresses data using LZ4
func (o *LZ4Operation) Apply(input []byte) ([]byte, error) {
	return compressAll(input, newLZ4Writer)
}

// ApplyStream compresses a stream using LZ4
func (o *LZ4Operation) ApplyStream(input io.Reader, output io.Writer) error {
	return compressStream(input, output, newLZ4Writer)
}

// Reverse decompresses LZ4 data up to MaxDecompressedSize
func (o *LZ4Operation) Reverse(input []byte) ([]byte, error) {
	data, err := readAllLimited(lz4.NewReader(bytes.NewReader(input)))
	if err != nil {
		return nil, fmt.Errorf("reading lz4 data: %w", err)
	}
	return data, nil
}

// ReverseStream decompresses an LZ4 stream
func (o *LZ4Operation) ReverseStream(input io.Reader, output io.Writer) error {
	if _, err := io.Copy(output, lz4.NewReader(input)); err != nil {
		return fmt.Errorf("decompressing stream: %w", err)
	}
	return nil
}

// EstimateSize estimates compressed size
func (o *LZ4Operation) EstimateSize(inputSize int64) int64 {
	return int64(lz4.CompressBlockBound(int(inputSize))) + 19 // frame header and end mark
}
