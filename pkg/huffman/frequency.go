// Package huffman builds prefix-free codes from symbol frequencies and packs
// text into a padded MSB-first bitstream with them.
//
// A symbol is one rune of the input text. Every call builds its own tree and
// table; nothing is cached between calls.
package huffman

import "sort"

// Frequencies maps each distinct symbol to its occurrence count.
type Frequencies map[rune]int

// CountFrequencies tallies every rune of text. Empty text yields an empty map.
func CountFrequencies(text string) Frequencies {
	freqs := make(Frequencies)
	for _, r := range text {
		freqs[r]++
	}
	return freqs
}

// Symbols returns the distinct symbols in ascending order.
func (f Frequencies) Symbols() []rune {
	symbols := make([]rune, 0, len(f))
	for r := range f {
		symbols = append(symbols, r)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

// Total returns the number of symbols counted.
func (f Frequencies) Total() int {
	total := 0
	for _, n := range f {
		total += n
	}
	return total
}
