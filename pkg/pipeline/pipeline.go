// Package pipeline composes the Huffman codec, the XOR cipher and a
// transport encoding into the encode and decode paths.
//
//	Encode: text → frequencies → tree → codes → packed bytes → XOR → transport
//	Decode: transport → XOR → unpack → text
//
// The code table and padding are not secret and must travel with the
// ciphertext; the decoder cannot recover them from the ciphertext alone.
package pipeline

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	hxerr "github.com/provide-io/huffcrypt/pkg/errors"
	"github.com/provide-io/huffcrypt/pkg/huffman"
	"github.com/provide-io/huffcrypt/pkg/operations"
	_ "github.com/provide-io/huffcrypt/pkg/operations/encoding"
)

// DefaultTransport is the transport encoding used when none is configured.
const DefaultTransport = operations.OP_BASE64

// Result is everything a decoder needs besides the algorithm itself.
type Result struct {
	Ciphertext string            `json:"encoded_data"`
	Key        string            `json:"key"`
	CodeTable  huffman.CodeTable `json:"huffman_codes"`
	Padding    int               `json:"padding"`

	// Operations is the packed chain that turned the packed payload into
	// Ciphertext, e.g. xor.b64.
	Operations uint64 `json:"operations,omitempty"`
}

// Codec runs the pipeline with a fixed transport encoding. It holds no
// per-call state and is safe for concurrent use.
type Codec struct {
	transport uint8
	logger    hclog.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTransport selects the transport encoding by operation ID.
func WithTransport(id uint8) Option {
	return func(c *Codec) {
		c.transport = id
	}
}

// New creates a Codec. It fails if the transport is not a registered
// transport encoding.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{
		transport: DefaultTransport,
		logger:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if !operations.IsTransportOp(c.transport) {
		return nil, fmt.Errorf("operation %s is not a transport encoding", operations.GetName(c.transport))
	}
	if _, err := operations.Get(c.transport); err != nil {
		return nil, err
	}
	return c, nil
}

// Transport returns the transport encoding ID.
func (c *Codec) Transport() uint8 {
	return c.transport
}

// Chain returns the operations applied after packing, in order.
func (c *Codec) Chain() []uint8 {
	return []uint8{operations.OP_XOR, c.transport}
}

// Encode compresses text with a code table built from text itself, XORs
// the packed bytes with key and applies the transport encoding.
func (c *Codec) Encode(text string, key []byte) (*Result, error) {
	ops, err := operations.Resolve(c.Chain(), key)
	if err != nil {
		return nil, err
	}

	freqs := huffman.CountFrequencies(text)
	tree := huffman.BuildTree(freqs)
	table := huffman.GenerateCodes(tree)

	c.logger.Trace("🌳 Built code table",
		"symbols", len(freqs),
		"runes", freqs.Total(),
		"max_code_len", table.MaxCodeLen(),
	)

	payload, err := huffman.Pack(text, table)
	if err != nil {
		return nil, fmt.Errorf("packing text: %w", err)
	}

	c.logger.Trace("📦 Packed payload",
		"bytes", len(payload.Bytes),
		"bits", payload.Bits(),
		"padding", payload.Padding,
	)

	out, err := operations.ApplyChain(payload.Bytes, ops)
	if err != nil {
		return nil, err
	}

	packed, err := operations.PackOperations(c.Chain())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("✅ Encoded text",
		"chain", operations.OperationsToString(packed),
		"ciphertext_len", len(out),
	)

	return &Result{
		Ciphertext: string(out),
		Key:        string(key),
		CodeTable:  table,
		Padding:    payload.Padding,
		Operations: packed,
	}, nil
}

// Decode reverses Encode. The padding is checked before any other work.
func (c *Codec) Decode(ciphertext string, key []byte, table huffman.CodeTable, padding int) (string, error) {
	return c.decode(ciphertext, key, table, padding, c.Chain())
}

// DecodeResult decodes a Result using the chain recorded in it, falling
// back to the codec's own chain when none was recorded. The key argument
// takes precedence over Result.Key when non-empty.
func (c *Codec) DecodeResult(res *Result, key []byte) (string, error) {
	if len(key) == 0 {
		key = []byte(res.Key)
	}
	chain := c.Chain()
	if res.Operations != 0 {
		chain = operations.UnpackOperations(res.Operations)
		if err := checkChain(chain); err != nil {
			return "", err
		}
	}
	return c.decode(res.Ciphertext, key, res.CodeTable, res.Padding, chain)
}

func (c *Codec) decode(ciphertext string, key []byte, table huffman.CodeTable, padding int, chain []uint8) (string, error) {
	if padding < 0 || padding > huffman.MaxPadding {
		return "", fmt.Errorf("%w: %d not in [0,%d]", hxerr.ErrInvalidPadding, padding, huffman.MaxPadding)
	}

	ops, err := operations.Resolve(chain, key)
	if err != nil {
		return "", err
	}

	packed, err := operations.ReverseChain([]byte(ciphertext), ops)
	if err != nil {
		return "", err
	}

	c.logger.Trace("📂 Recovered packed payload",
		"bytes", len(packed),
		"padding", padding,
		"symbols", len(table),
	)

	text, err := huffman.Unpack(packed, table, padding)
	if err != nil {
		return "", fmt.Errorf("unpacking payload: %w", err)
	}
	return text, nil
}

// checkChain accepts only XOR followed by one transport encoding, so the
// cipher always wraps the packed bytes directly.
func checkChain(chain []uint8) error {
	if len(chain) != 2 || chain[0] != operations.OP_XOR || !operations.IsTransportOp(chain[1]) {
		packed, _ := operations.PackOperations(chain)
		return fmt.Errorf("unsupported operation chain %q", operations.OperationsToString(packed))
	}
	return nil
}
