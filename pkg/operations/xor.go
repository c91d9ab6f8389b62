package operations

import (
	"fmt"
	"io"

	"github.com/provide-io/huffcrypt/pkg/cipher"
)

// XOROperation applies the repeating-key XOR cipher. It is self-inverse.
type XOROperation struct {
	BaseOperation
	key []byte
}

// NewXOROperation creates an XOR operation bound to key.
func NewXOROperation(key []byte) (*XOROperation, error) {
	if _, err := cipher.XOREncode(nil, key); err != nil {
		return nil, err
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &XOROperation{
		BaseOperation: BaseOperation{OpID: OP_XOR, OpName: "XOR"},
		key:           k,
	}, nil
}

// Apply XORs input with the key
func (o *XOROperation) Apply(input []byte) ([]byte, error) {
	return cipher.XOREncode(input, o.key)
}

// ApplyStream XORs a stream with the key
func (o *XOROperation) ApplyStream(input io.Reader, output io.Writer) error {
	w, err := cipher.NewXORWriter(output, o.key)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, input); err != nil {
		return fmt.Errorf("xor stream: %w", err)
	}
	return nil
}

// Reverse is Apply
func (o *XOROperation) Reverse(input []byte) ([]byte, error) {
	return cipher.XORDecode(input, o.key)
}

// ReverseStream is ApplyStream
func (o *XOROperation) ReverseStream(input io.Reader, output io.Writer) error {
	return o.ApplyStream(input, output)
}
