// Package cipher implements the repeating-key XOR stream cipher.
//
// XOR gives confidentiality against casual inspection only. It has no
// integrity protection: a wrong key usually fails to decode, but it can
// also produce different text of the same length.
package cipher

import (
	"io"

	hxerr "github.com/provide-io/huffcrypt/pkg/errors"
)

// XOREncode XORs every byte of data with key[i % len(key)].
func XOREncode(data []byte, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, hxerr.ErrEmptyKey
	}
	result := make([]byte, len(data))
	for i := range data {
		result[i] = data[i] ^ key[i%len(key)]
	}
	return result, nil
}

// XORDecode decodes data with repeating XOR key (XOR is symmetric)
func XORDecode(data []byte, key []byte) ([]byte, error) {
	return XOREncode(data, key) // XOR is its own inverse
}

// XORWriter applies the cipher to everything written through it. The key
// position carries over between writes, so splitting the input into chunks
// does not change the output.
type XORWriter struct {
	w   io.Writer
	key []byte
	pos int
	buf []byte
}

// NewXORWriter wraps w.
func NewXORWriter(w io.Writer, key []byte) (*XORWriter, error) {
	if len(key) == 0 {
		return nil, hxerr.ErrEmptyKey
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &XORWriter{w: w, key: k}, nil
}

// Write implements io.Writer.
func (x *XORWriter) Write(p []byte) (int, error) {
	if cap(x.buf) < len(p) {
		x.buf = make([]byte, len(p))
	}
	out := x.buf[:len(p)]
	for i, b := range p {
		out[i] = b ^ x.key[(x.pos+i)%len(x.key)]
	}

	n, err := x.w.Write(out)
	x.pos = (x.pos + n) % len(x.key)
	return n, err
}
