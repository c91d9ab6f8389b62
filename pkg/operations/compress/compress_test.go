package compress

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/huffcrypt/pkg/operations"
)

func allOps() []operations.Operation {
	return []operations.Operation{
		NewGzipOperation(),
		NewBzip2Operation(),
		NewZstdOperation(),
		NewLZ4Operation(),
	}
}

func TestRegistered(t *testing.T) {
	for _, op := range allOps() {
		got, err := operations.Get(op.ID())
		require.NoError(t, err, op.Name())
		assert.Equal(t, op.Name(), got.Name())
		assert.True(t, operations.IsCompressionOp(op.ID()), op.Name())
	}
}

func TestRoundTrip(t *testing.T) {
	input := []byte(strings.Repeat("0110101110 huffman code table ", 200))

	for _, op := range allOps() {
		t.Run(op.Name(), func(t *testing.T) {
			compressed, err := op.Apply(input)
			require.NoError(t, err)
			assert.Less(t, len(compressed), len(input))

			out, err := op.Reverse(compressed)
			require.NoError(t, err)
			assert.Equal(t, input, out)

			var streamed bytes.Buffer
			require.NoError(t, op.ReverseStream(bytes.NewReader(compressed), &streamed))
			assert.Equal(t, input, streamed.Bytes())
		})
	}
}

func TestReverseCorrupt(t *testing.T) {
	for _, op := range allOps() {
		_, err := op.Reverse([]byte("definitely not compressed"))
		assert.Error(t, err, op.Name())
	}
}

func TestReadAllLimited(t *testing.T) {
	data, err := readAllLimited(io.LimitReader(zeroReader{}, MaxDecompressedSize))
	require.NoError(t, err)
	assert.Len(t, data, MaxDecompressedSize)

	_, err = readAllLimited(io.LimitReader(zeroReader{}, MaxDecompressedSize+1))
	assert.True(t, errors.Is(err, ErrTooLarge), "got %v", err)
}

func TestDecompressionBomb(t *testing.T) {
	bomb := make([]byte, MaxDecompressedSize+1)

	for _, op := range []operations.Operation{NewZstdOperation(), NewLZ4Operation()} {
		t.Run(op.Name(), func(t *testing.T) {
			compressed, err := op.Apply(bomb)
			require.NoError(t, err)

			_, err = op.Reverse(compressed)
			assert.True(t, errors.Is(err, ErrTooLarge), "got %v", err)
		})
	}
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}
