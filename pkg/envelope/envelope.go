// Package envelope stores an encoded result in a self-describing file.
//
// Layout:
//
//	"HXC1" | compression op (1 byte) | body
//
// body is the CBOR encoding of Envelope, compressed with the named
// operation unless it is OP_NONE. The cipher key is never stored.
package envelope

import (
	"bytes"
	"fmt"

	"github.com/zeebo/blake3"

	hxerr "github.com/provide-io/huffcrypt/pkg/errors"
	"github.com/provide-io/huffcrypt/pkg/huffman"
	"github.com/provide-io/huffcrypt/pkg/operations"
	_ "github.com/provide-io/huffcrypt/pkg/operations/compress"
	"github.com/provide-io/huffcrypt/pkg/pipeline"
)

const (
	Magic          = "HXC1"
	CurrentVersion = uint16(1)
	headerSize     = len(Magic) + 1
	digestSize     = 32
)

// metaDomainKey keys the BLAKE3 digest over envelope metadata. The
// digest catches corrupted files; it is not a MAC.
var metaDomainKey = [32]byte{
	'h', 'u', 'f', 'f', 'c', 'r', 'y', 'p', 't', '.', 'e', 'n', 'v', 'e', 'l', 'o',
	'p', 'e', '.', 'm', 'e', 't', 'a', 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Envelope is the decoded body of a sealed file.
type Envelope struct {
	Version    uint16            `cbor:"1,keyasint"`
	Operations uint64            `cbor:"2,keyasint"`
	Ciphertext string            `cbor:"3,keyasint"`
	CodeTable  huffman.CodeTable `cbor:"4,keyasint"`
	Padding    uint8             `cbor:"5,keyasint"`
	Digest     []byte            `cbor:"6,keyasint"`

	// Compression is taken from the file header.
	Compression uint8 `cbor:"-"`
}

// digestInput is the part of the envelope covered by Digest.
type digestInput struct {
	Operations uint64            `cbor:"1,keyasint"`
	Ciphertext string            `cbor:"2,keyasint"`
	CodeTable  huffman.CodeTable `cbor:"3,keyasint"`
	Padding    uint8             `cbor:"4,keyasint"`
}

func (e *Envelope) computeDigest() ([]byte, error) {
	data, err := encMode.Marshal(digestInput{
		Operations: e.Operations,
		Ciphertext: e.Ciphertext,
		CodeTable:  e.CodeTable,
		Padding:    e.Padding,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding digest input: %w", err)
	}

	hasher, err := blake3.NewKeyed(metaDomainKey[:])
	if err != nil {
		return nil, fmt.Errorf("creating digest: %w", err)
	}
	if _, err := hasher.Write(data); err != nil {
		return nil, fmt.Errorf("hashing metadata: %w", err)
	}
	return hasher.Sum(nil), nil
}

// Seal serializes res into a sealed file body. compression must be
// OP_NONE or a registered compression operation.
func Seal(res *pipeline.Result, compression uint8) ([]byte, error) {
	if res.Padding < 0 || res.Padding > huffman.MaxPadding {
		return nil, fmt.Errorf("%w: %d", hxerr.ErrInvalidPadding, res.Padding)
	}
	compressor, err := compressionOp(compression)
	if err != nil {
		return nil, err
	}

	ops := res.Operations
	if ops == 0 {
		ops, err = operations.PackOperations([]uint8{operations.OP_XOR, pipeline.DefaultTransport})
		if err != nil {
			return nil, err
		}
	}

	env := &Envelope{
		Version:    CurrentVersion,
		Operations: ops,
		Ciphertext: res.Ciphertext,
		CodeTable:  res.CodeTable,
		Padding:    uint8(res.Padding),
	}
	if env.CodeTable == nil {
		env.CodeTable = huffman.CodeTable{}
	}
	if env.Digest, err = env.computeDigest(); err != nil {
		return nil, err
	}

	body, err := encMode.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	if compressor != nil {
		if body, err = compressor.Apply(body); err != nil {
			return nil, fmt.Errorf("compressing envelope: %w", err)
		}
	}

	out := make([]byte, 0, headerSize+len(body))
	out = append(out, Magic...)
	out = append(out, compression)
	return append(out, body...), nil
}

// Parse decodes a sealed file and checks its digest.
func Parse(data []byte) (*Envelope, error) {
	body, compression, err := readBody(data)
	if err != nil {
		return nil, err
	}

	var env Envelope
	if err := decMode.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	env.Compression = compression

	if env.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: %d", hxerr.ErrUnsupportedVersion, env.Version)
	}
	if err := env.verifyDigest(); err != nil {
		return nil, err
	}
	return &env, nil
}

func (e *Envelope) verifyDigest() error {
	want, err := e.computeDigest()
	if err != nil {
		return err
	}
	if len(e.Digest) != digestSize || !bytes.Equal(want, e.Digest) {
		return hxerr.ErrDigestMismatch
	}
	return nil
}

// readBody checks the header and returns the decompressed CBOR body.
func readBody(data []byte) ([]byte, uint8, error) {
	if len(data) < headerSize || string(data[:len(Magic)]) != Magic {
		return nil, 0, hxerr.ErrInvalidMagic
	}
	compression := data[len(Magic)]
	body := data[headerSize:]

	compressor, err := compressionOp(compression)
	if err != nil {
		return nil, 0, err
	}
	if compressor != nil {
		if body, err = compressor.Reverse(body); err != nil {
			return nil, 0, fmt.Errorf("decompressing envelope: %w", err)
		}
	}
	return body, compression, nil
}

func compressionOp(id uint8) (operations.Operation, error) {
	if id == operations.OP_NONE {
		return nil, nil
	}
	if !operations.IsCompressionOp(id) {
		return nil, fmt.Errorf("operation %s is not a compression operation", operations.GetName(id))
	}
	return operations.Get(id)
}

// Result returns the stored fields as a pipeline result without a key.
func (e *Envelope) Result() *pipeline.Result {
	return &pipeline.Result{
		Ciphertext: e.Ciphertext,
		CodeTable:  e.CodeTable,
		Padding:    int(e.Padding),
		Operations: e.Operations,
	}
}

// Open decodes the stored ciphertext with key.
func (e *Envelope) Open(codec *pipeline.Codec, key []byte) (string, error) {
	return codec.DecodeResult(e.Result(), key)
}
