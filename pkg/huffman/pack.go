package huffman

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/icza/bitio"

	hxerr "github.com/provide-io/huffcrypt/pkg/errors"
)

// MaxPadding is the largest number of filler bits a payload can carry.
const MaxPadding = 7

// Payload is a packed bitstream. Padding counts the zero bits appended to
// the last byte to reach a byte boundary.
type Payload struct {
	Bytes   []byte
	Padding int
}

// Bits returns the number of meaningful bits in the payload.
func (p Payload) Bits() int {
	return len(p.Bytes)*8 - p.Padding
}

// Pack concatenates the code of every rune of text, most significant bit
// first, and zero-pads the result to a whole number of bytes.
func Pack(text string, table CodeTable) (Payload, error) {
	if !utf8.ValidString(text) {
		return Payload{}, hxerr.ErrInvalidText
	}

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)

	for i, r := range text {
		code, ok := table[r]
		if !ok || code == "" {
			return Payload{}, fmt.Errorf("%w: %q at byte %d", hxerr.ErrSymbolNotInTable, r, i)
		}
		for j := 0; j < len(code); j++ {
			if err := w.WriteBool(code[j] == '1'); err != nil {
				return Payload{}, fmt.Errorf("writing bits: %w", err)
			}
		}
	}

	skipped, err := w.Align()
	if err != nil {
		return Payload{}, fmt.Errorf("aligning bitstream: %w", err)
	}
	if err := w.Close(); err != nil {
		return Payload{}, fmt.Errorf("closing bit writer: %w", err)
	}

	return Payload{Bytes: buf.Bytes(), Padding: int(skipped)}, nil
}
