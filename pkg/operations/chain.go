package operations

import (
	"fmt"
	"strings"
)

// MaxChainLength is the number of operations that fit in a packed chain.
const MaxChainLength = 8

// PackOperations packs a list of operations into a 64-bit integer.
// Each operation takes 8 bits, allowing up to 8 operations in the chain.
// Operations are packed in execution order (first operation in LSB).
func PackOperations(operations []uint8) (uint64, error) {
	if len(operations) > MaxChainLength {
		return 0, fmt.Errorf("maximum %d operations allowed, got %d", MaxChainLength, len(operations))
	}

	var packed uint64
	for i, op := range operations {
		if op == OP_NONE {
			return 0, fmt.Errorf("operation %d is OP_NONE", i)
		}
		packed |= uint64(op) << (i * 8)
	}

	return packed, nil
}

// UnpackOperations unpacks a 64-bit integer into a list of operations.
func UnpackOperations(packed uint64) []uint8 {
	var operations []uint8

	for i := 0; i < MaxChainLength; i++ {
		op := uint8((packed >> (i * 8)) & 0xFF)
		if op == OP_NONE { // OP_NONE terminates the chain
			break
		}
		operations = append(operations, op)
	}

	return operations
}

// OperationsToString converts packed operations to human-readable string.
func OperationsToString(packed uint64) string {
	if packed == 0 {
		return "raw"
	}

	operations := UnpackOperations(packed)

	chain := operationsToChain(operations)
	if name, ok := commonChains[chain]; ok {
		return name
	}

	var names []string
	for _, op := range operations {
		names = append(names, strings.ToLower(GetName(op)))
	}

	return strings.Join(names, "|")
}

// StringToOperations parses operation string to packed operations.
func StringToOperations(opString string) (uint64, error) {
	ops, err := ParseChain(opString)
	if err != nil {
		return 0, err
	}
	return PackOperations(ops)
}

// ParseChain parses a chain name ("xor.b64") or a pipe-separated list
// ("xor|base64") into operation IDs.
func ParseChain(opString string) ([]uint8, error) {
	opString = strings.ToLower(strings.TrimSpace(opString))
	if opString == "" || opString == "raw" {
		return nil, nil
	}

	if ops, ok := namedChains[opString]; ok {
		return append([]uint8(nil), ops...), nil
	}

	var operations []uint8
	for _, part := range strings.Split(opString, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		op, err := ParseOperation(part)
		if err != nil {
			return nil, err
		}
		if op == OP_NONE {
			continue
		}
		operations = append(operations, op)
	}
	if len(operations) == 0 {
		return nil, fmt.Errorf("unknown operation string: %s", opString)
	}
	return operations, nil
}

// ParseOperation parses a single operation name. "none" yields OP_NONE.
func ParseOperation(name string) (uint8, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	if key == "NONE" || key == "RAW" {
		return OP_NONE, nil
	}
	op, ok := namedOperations[key]
	if !ok {
		return 0, fmt.Errorf("unsupported operation: %s", name)
	}
	return op, nil
}

// operationsToChain converts operations slice to string for map lookup
func operationsToChain(ops []uint8) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = fmt.Sprintf("%02x", op)
	}
	return strings.Join(parts, "-")
}

// Common operation chains
var commonChains = map[string]string{
	"44-50": "xor.b64",
	"44-51": "xor.b64url",
	"44-52": "xor.b32",
	"44-54": "xor.hex",
	"44":    "xor",
}

// Named chains for parsing
var namedChains = map[string][]uint8{
	"xor.b64":    {OP_XOR, OP_BASE64},
	"xor.b64url": {OP_XOR, OP_BASE64_URL},
	"xor.b32":    {OP_XOR, OP_BASE32},
	"xor.hex":    {OP_XOR, OP_HEX},
}

// Named operations for parsing
var namedOperations = map[string]uint8{
	"GZIP":       OP_GZIP,
	"BZIP2":      OP_BZIP2,
	"ZSTD":       OP_ZSTD,
	"LZ4":        OP_LZ4,
	"XOR":        OP_XOR,
	"BASE64":     OP_BASE64,
	"BASE64_URL": OP_BASE64_URL,
	"BASE64URL":  OP_BASE64_URL,
	"BASE32":     OP_BASE32,
	"HEX":        OP_HEX,
}

// Resolve turns operation IDs into operations. OP_XOR is bound to key;
// everything else comes from the registry.
func Resolve(ids []uint8, key []byte) ([]Operation, error) {
	ops := make([]Operation, 0, len(ids))
	for _, id := range ids {
		if id == OP_XOR {
			op, err := NewXOROperation(key)
			if err != nil {
				return nil, fmt.Errorf("operation 0x%02x: %w", id, err)
			}
			ops = append(ops, op)
			continue
		}
		op, err := Get(id)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// ApplyChain applies a chain of operations to data
func ApplyChain(data []byte, ops []Operation) ([]byte, error) {
	current := data

	for _, op := range ops {
		result, err := op.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("applying %s: %w", op.Name(), err)
		}

		current = result
	}

	return current, nil
}

// ReverseChain reverses a chain of operations on data
func ReverseChain(data []byte, ops []Operation) ([]byte, error) {
	current := data

	// Apply operations in reverse order
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		if !op.CanReverse() {
			return nil, fmt.Errorf("operation %s is not reversible", op.Name())
		}

		result, err := op.Reverse(current)
		if err != nil {
			return nil, fmt.Errorf("reversing %s: %w", op.Name(), err)
		}

		current = result
	}

	return current, nil
}
