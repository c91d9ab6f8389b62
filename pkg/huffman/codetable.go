package huffman

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	hxerr "github.com/provide-io/huffcrypt/pkg/errors"
)

// CodeTable maps each symbol to its code, a non-empty string of '0' and '1'.
type CodeTable map[rune]string

// GenerateCodes walks the tree depth-first, appending "0" for every left
// descent and "1" for every right descent. A single-leaf tree gets the code
// "0"; a nil tree yields an empty table.
func GenerateCodes(t *Tree) CodeTable {
	table := make(CodeTable)
	if t == nil {
		return table
	}

	var walk func(h int, prefix []byte)
	walk = func(h int, prefix []byte) {
		n := t.nodes[h]
		if n.IsLeaf() {
			if len(prefix) == 0 {
				table[n.Symbol] = "0"
			} else {
				table[n.Symbol] = string(prefix)
			}
			return
		}
		walk(n.Left, append(prefix, '0'))
		walk(n.Right, append(prefix, '1'))
	}
	walk(t.root, make([]byte, 0, 16))

	return table
}

// BuildCodeTable runs the counter, tree builder and code generator over text.
func BuildCodeTable(text string) CodeTable {
	return GenerateCodes(BuildTree(CountFrequencies(text)))
}

// Validate checks that every code is a non-empty binary string and that no
// code is a prefix of another (which also rules out duplicates).
func (c CodeTable) Validate() error {
	codes := make([]string, 0, len(c))
	for r, code := range c {
		if code == "" {
			return fmt.Errorf("%w: empty code for %q", hxerr.ErrInvalidCodeTable, r)
		}
		if strings.Trim(code, "01") != "" {
			return fmt.Errorf("%w: code %q for %q is not binary", hxerr.ErrInvalidCodeTable, code, r)
		}
		codes = append(codes, code)
	}

	// A code that prefixes another sorts immediately before some code that
	// shares the prefix, so adjacent pairs are enough.
	sort.Strings(codes)
	for i := 1; i < len(codes); i++ {
		if strings.HasPrefix(codes[i], codes[i-1]) {
			return fmt.Errorf("%w: code %q is a prefix of %q", hxerr.ErrInvalidCodeTable, codes[i-1], codes[i])
		}
	}
	return nil
}

// IsPrefixFree reports whether no code in the table prefixes another.
func (c CodeTable) IsPrefixFree() bool {
	return c.Validate() == nil
}

// Reverse returns the code-to-symbol mapping used for decoding.
func (c CodeTable) Reverse() map[string]rune {
	rev := make(map[string]rune, len(c))
	for r, code := range c {
		rev[code] = r
	}
	return rev
}

// MaxCodeLen returns the length of the longest code.
func (c CodeTable) MaxCodeLen() int {
	longest := 0
	for _, code := range c {
		if len(code) > longest {
			longest = len(code)
		}
	}
	return longest
}

// Entry is one symbol of a code table.
type Entry struct {
	Symbol rune
	Code   string
}

// Entries returns the table ordered by code length, then by symbol.
func (c CodeTable) Entries() []Entry {
	entries := make([]Entry, 0, len(c))
	for r, code := range c {
		entries = append(entries, Entry{Symbol: r, Code: code})
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].Code) != len(entries[j].Code) {
			return len(entries[i].Code) < len(entries[j].Code)
		}
		return entries[i].Symbol < entries[j].Symbol
	})
	return entries
}

// MarshalJSON encodes the table as an object keyed by the symbol itself,
// e.g. {"a":"0","b":"10"}.
func (c CodeTable) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(c))
	for r, code := range c {
		m[string(r)] = code
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object whose keys are single characters.
func (c *CodeTable) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	table := make(CodeTable, len(m))
	for key, code := range m {
		r, size := utf8.DecodeRuneInString(key)
		if size == 0 || size != len(key) || (r == utf8.RuneError && size == 1) {
			return fmt.Errorf("%w: key %q is not a single character", hxerr.ErrInvalidCodeTable, key)
		}
		table[r] = code
	}
	*c = table
	return nil
}
