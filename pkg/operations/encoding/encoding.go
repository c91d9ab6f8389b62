// Package encoding provides the text-safe transport encodings used to carry
// ciphertext inside JSON and other text protocols.
package encoding

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	hxerr "github.com/provide-io/huffcrypt/pkg/errors"
	"github.com/provide-io/huffcrypt/pkg/operations"
)

func init() {
	operations.Register(NewBase64Operation())
	operations.Register(NewBase64URLOperation())
	operations.Register(NewBase32Operation())
	operations.Register(NewHexOperation())
}

type codec struct {
	encode     func([]byte) string
	decode     func(string) ([]byte, error)
	encodedLen func(int) int
	newEncoder func(io.Writer) io.WriteCloser
	newDecoder func(io.Reader) io.Reader
}

// TransportOperation encodes bytes as text and back.
type TransportOperation struct {
	operations.BaseOperation
	codec codec
}

// NewBase64Operation creates the standard base64 transport
func NewBase64Operation() *TransportOperation {
	return newTransport(operations.OP_BASE64, "BASE64", base64.StdEncoding)
}

// NewBase64URLOperation creates the URL-safe base64 transport
func NewBase64URLOperation() *TransportOperation {
	return newTransport(operations.OP_BASE64_URL, "BASE64_URL", base64.URLEncoding)
}

// NewBase32Operation creates the base32 transport
func NewBase32Operation() *TransportOperation {
	enc := base32.StdEncoding
	return &TransportOperation{
		BaseOperation: operations.BaseOperation{OpID: operations.OP_BASE32, OpName: "BASE32"},
		codec: codec{
			encode:     enc.EncodeToString,
			decode:     enc.DecodeString,
			encodedLen: enc.EncodedLen,
			newEncoder: func(w io.Writer) io.WriteCloser { return base32.NewEncoder(enc, w) },
			newDecoder: func(r io.Reader) io.Reader { return base32.NewDecoder(enc, r) },
		},
	}
}

// NewHexOperation creates the hexadecimal transport
func NewHexOperation() *TransportOperation {
	return &TransportOperation{
		BaseOperation: operations.BaseOperation{OpID: operations.OP_HEX, OpName: "HEX"},
		codec: codec{
			encode:     hex.EncodeToString,
			decode:     hex.DecodeString,
			encodedLen: hex.EncodedLen,
			newEncoder: func(w io.Writer) io.WriteCloser { return nopCloser{hex.NewEncoder(w)} },
			newDecoder: hex.NewDecoder,
		},
	}
}

func newTransport(id uint8, name string, enc *base64.Encoding) *TransportOperation {
	return &TransportOperation{
		BaseOperation: operations.BaseOperation{OpID: id, OpName: name},
		codec: codec{
			encode:     enc.EncodeToString,
			decode:     enc.DecodeString,
			encodedLen: enc.EncodedLen,
			newEncoder: func(w io.Writer) io.WriteCloser { return base64.NewEncoder(enc, w) },
			newDecoder: func(r io.Reader) io.Reader { return base64.NewDecoder(enc, r) },
		},
	}
}

// Apply encodes input as text
func (o *TransportOperation) Apply(input []byte) ([]byte, error) {
	return []byte(o.codec.encode(input)), nil
}

// ApplyStream encodes a stream
func (o *TransportOperation) ApplyStream(input io.Reader, output io.Writer) error {
	w := o.codec.newEncoder(output)
	if _, err := io.Copy(w, input); err != nil {
		w.Close()
		return fmt.Errorf("encoding stream: %w", err)
	}
	return w.Close()
}

// Reverse decodes text back to bytes
func (o *TransportOperation) Reverse(input []byte) ([]byte, error) {
	data, err := o.codec.decode(string(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", hxerr.ErrMalformedTransport, o.Name(), err)
	}
	return data, nil
}

// ReverseStream decodes a stream
func (o *TransportOperation) ReverseStream(input io.Reader, output io.Writer) error {
	if _, err := io.Copy(output, o.codec.newDecoder(input)); err != nil {
		return fmt.Errorf("%w: %s: %v", hxerr.ErrMalformedTransport, o.Name(), err)
	}
	return nil
}

// EstimateSize returns the exact encoded size
func (o *TransportOperation) EstimateSize(inputSize int64) int64 {
	return int64(o.codec.encodedLen(int(inputSize)))
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
