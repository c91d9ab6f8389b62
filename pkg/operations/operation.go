// Package operations defines the reversible byte transformations applied
// around a packed Huffman payload: the XOR cipher, transport encodings, and
// the compression used for sealed envelopes.
package operations

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Operation identifiers. They are stored in envelopes, so values must not change.
const (
	// No operation - raw data
	OP_NONE uint8 = 0x00

	// Compression operations (0x10-0x2F)
	OP_GZIP  uint8 = 0x10 // GZIP compression
	OP_BZIP2 uint8 = 0x13 // BZIP2 compression
	OP_ZSTD  uint8 = 0x1B // Zstandard compression
	OP_LZ4   uint8 = 0x1E // LZ4 block compression

	// Cipher operations (0x30-0x4F)
	OP_XOR uint8 = 0x44 // Repeating-key XOR

	// Transport encodings (0x50-0x6F)
	OP_BASE64     uint8 = 0x50 // Standard base64 with padding
	OP_BASE64_URL uint8 = 0x51 // URL-safe base64 with padding
	OP_BASE32     uint8 = 0x52 // Standard base32
	OP_HEX        uint8 = 0x54 // Lowercase hexadecimal
)

// Operation represents a single transformation operation
type Operation interface {
	// ID returns the operation identifier (e.g., OP_BASE64)
	ID() uint8

	// Name returns the human-readable name
	Name() string

	// Apply applies the operation to input data
	Apply(input []byte) ([]byte, error)

	// ApplyStream applies the operation to a stream
	ApplyStream(input io.Reader, output io.Writer) error

	// Reverse reverses the operation (e.g., decompress for compression)
	Reverse(input []byte) ([]byte, error)

	// ReverseStream reverses the operation on a stream
	ReverseStream(input io.Reader, output io.Writer) error

	// CanReverse returns true if the operation is reversible
	CanReverse() bool

	// EstimateSize estimates the output size given input size
	EstimateSize(inputSize int64) int64
}

// BaseOperation provides common functionality for operations
type BaseOperation struct {
	OpID   uint8
	OpName string
}

func (o *BaseOperation) ID() uint8 {
	return o.OpID
}

func (o *BaseOperation) Name() string {
	return o.OpName
}

func (o *BaseOperation) CanReverse() bool {
	return true
}

func (o *BaseOperation) EstimateSize(inputSize int64) int64 {
	return inputSize
}

var (
	registryMu sync.RWMutex
	registry   = make(map[uint8]Operation)
)

// Register registers a keyless operation implementation. Operations that
// need a key are built per call and never registered.
func Register(op Operation) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[op.ID()] = op
}

// Get retrieves an operation by ID
func Get(id uint8) (Operation, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	op, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown operation: 0x%02x", id)
	}
	return op, nil
}

// Registered returns the IDs of all registered operations in ascending order.
func Registered() []uint8 {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]uint8, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// GetName returns the name of an operation by ID
func GetName(id uint8) string {
	switch id {
	case OP_NONE:
		return "NONE"
	case OP_GZIP:
		return "GZIP"
	case OP_BZIP2:
		return "BZIP2"
	case OP_ZSTD:
		return "ZSTD"
	case OP_LZ4:
		return "LZ4"
	case OP_XOR:
		return "XOR"
	case OP_BASE64:
		return "BASE64"
	case OP_BASE64_URL:
		return "BASE64_URL"
	case OP_BASE32:
		return "BASE32"
	case OP_HEX:
		return "HEX"
	default:
		return fmt.Sprintf("UNKNOWN_%02x", id)
	}
}

// IsCompressionOp returns true if the operation is a compression operation
func IsCompressionOp(op uint8) bool {
	return op >= 0x10 && op <= 0x2F
}

// IsCipherOp returns true if the operation is a cipher operation
func IsCipherOp(op uint8) bool {
	return op >= 0x30 && op <= 0x4F
}

// IsTransportOp returns true if the operation is a text-safe transport encoding
func IsTransportOp(op uint8) bool {
	return op >= 0x50 && op <= 0x6F
}
