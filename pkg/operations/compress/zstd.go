package compress

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/provide-io/huffcrypt/pkg/operations"
)

// Shared zstd encoder/decoder for the block API. Both are safe for
// concurrent EncodeAll/DecodeAll calls.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(MaxDecompressedSize),
	)
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}

	operations.Register(NewZstdOperation())
}

// ZstdOperation implements Zstandard compression
type ZstdOperation struct {
	operations.BaseOperation
}

// NewZstdOperation creates a new ZSTD operation
func NewZstdOperation() *ZstdOperation {
	return &ZstdOperation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_ZSTD,
			OpName: "ZSTD",
		},
	}
}

// Apply compresses data using zstd
func (o *ZstdOperation) Apply(input []byte) ([]byte, error) {
	return zstdEncoder.EncodeAll(input, make([]byte, 0, len(input)/2+16)), nil
}

// ApplyStream compresses a stream using zstd
func (o *ZstdOperation) ApplyStream(input io.Reader, output io.Writer) error {
	zw, err := zstd.NewWriter(output)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}

	if _, err := io.Copy(zw, input); err != nil {
		zw.Close()
		return fmt.Errorf("compressing stream: %w", err)
	}

	return zw.Close()
}

// Reverse decompresses zstd data up to MaxDecompressedSize
func (o *ZstdOperation) Reverse(input []byte) ([]byte, error) {
	data, err := zstdDecoder.DecodeAll(input, nil)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
		return nil, ErrTooLarge
	}
	if err != nil {
		return nil, fmt.Errorf("zstd decompression: %w", err)
	}
	return data, nil
}

// ReverseStream decompresses a zstd stream
func (o *ZstdOperation) ReverseStream(input io.Reader, output io.Writer) error {
	zr, err := zstd.NewReader(input)
	if err != nil {
		return fmt.Errorf("creating zstd reader: %w", err)
	}
	defer zr.Close()

	if _, err := io.Copy(output, zr); err != nil {
		return fmt.Errorf("decompressing stream: %w", err)
	}

	return nil
}

// EstimateSize estimates compressed size
func (o *ZstdOperation) EstimateSize(inputSize int64) int64 {
	return (inputSize*6)/10 + 16
}
