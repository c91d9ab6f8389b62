package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"

	"github.com/provide-io/huffcrypt/pkg/operations"
)

func init() {
	operations.Register(NewBzip2Operation())
}

// Bzip2Operation implements BZIP2 compression
type Bzip2Operation struct {
	operations.BaseOperation
	level int
}

// NewBzip2Operation creates a new BZIP2 operation
func NewBzip2Operation() *Bzip2Operation {
	return &Bzip2Operation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_BZIP2,
			OpName: "BZIP2",
		},
		level: bzip2.BestCompression,
	}
}

func (o *Bzip2Operation) newWriter(w io.Writer) (io.WriteCloser, error) {
	return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: o.level})
}

// Apply compresses data using BZIP2
func (o *Bzip2Operation) Apply(input []byte) ([]byte, error) {
	return compressAll(input, o.newWriter)
}

// ApplyStream compresses a stream using BZIP2
func (o *Bzip2Operation) ApplyStream(input io.Reader, output io.Writer) error {
	return compressStream(input, output, o.newWriter)
}

// Reverse decompresses BZIP2 data up to MaxDecompressedSize
func (o *Bzip2Operation) Reverse(input []byte) ([]byte, error) {
	br, err := bzip2.NewReader(bytes.NewReader(input), nil)
	if err != nil {
		return nil, fmt.Errorf("creating bzip2 reader: %w", err)
	}
	defer br.Close()

	data, err := readAllLimited(br)
	if err != nil {
		return nil, fmt.Errorf("reading bzip2 data: %w", err)
	}
	return data, nil
}

// ReverseStream decompresses a BZIP2 stream
func (o *Bzip2Operation) ReverseStream(input io.Reader, output io.Writer) error {
	br, err := bzip2.NewReader(input, nil)
	if err != nil {
		return fmt.Errorf("creating bzip2 reader: %w", err)
	}
	defer br.Close()

	if _, err := io.Copy(output, br); err != nil {
		return fmt.Errorf("decompressing stream: %w", err)
	}
	return nil
}

// EstimateSize estimates compressed size
func (o *Bzip2Operation) EstimateSize(inputSize int64) int64 {
	return (inputSize*7)/10 + 32 // +32 for bzip2 overhead
}
