package huffman

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/icza/bitio"

	hxerr "github.com/provide-io/huffcrypt/pkg/errors"
)

// Unpack reverses Pack. It drops the trailing padding bits of the last byte
// and walks the rest, emitting a symbol whenever the accumulated bits equal
// a code of the table. Bits left over at the end mean the payload, key or
// table do not belong together and are reported as ErrUnknownSymbol.
func Unpack(data []byte, table CodeTable, padding int) (string, error) {
	if padding < 0 || padding > MaxPadding {
		return "", fmt.Errorf("%w: %d not in [0,%d]", hxerr.ErrInvalidPadding, padding, MaxPadding)
	}
	total := len(data)*8 - padding
	if total < 0 {
		return "", fmt.Errorf("%w: %d exceeds empty payload", hxerr.ErrInvalidPadding, padding)
	}
	if total == 0 {
		return "", nil
	}
	if err := table.Validate(); err != nil {
		return "", err
	}

	rev := table.Reverse()
	longest := table.MaxCodeLen()

	r := bitio.NewReader(bytes.NewReader(data))
	var out strings.Builder
	candidate := make([]byte, 0, longest)
	start := 0

	for pos := 0; pos < total; pos++ {
		bit, err := r.ReadBool()
		if err != nil {
			return "", fmt.Errorf("reading bit %d: %w", pos, err)
		}
		if bit {
			candidate = append(candidate, '1')
		} else {
			candidate = append(candidate, '0')
		}

		if sym, ok := rev[string(candidate)]; ok {
			out.WriteRune(sym)
			candidate = candidate[:0]
			start = pos + 1
			continue
		}
		if len(candidate) >= longest {
			return "", fmt.Errorf("%w: bits %s at offset %d", hxerr.ErrUnknownSymbol, candidate, start)
		}
	}

	if len(candidate) > 0 {
		return "", fmt.Errorf("%w: %d trailing bits at offset %d", hxerr.ErrUnknownSymbol, len(candidate), start)
	}
	return out.String(), nil
}
