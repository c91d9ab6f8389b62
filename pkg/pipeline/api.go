package pipeline

import (
	"github.com/provide-io/huffcrypt/pkg/huffman"
)

var defaultCodec = mustNew()

func mustNew() *Codec {
	c, err := New()
	if err != nil {
		panic("pipeline: default codec: " + err.Error())
	}
	return c
}

// Encode runs the encode path with base64 transport and no logging.
func Encode(text string, key []byte) (*Result, error) {
	return defaultCodec.Encode(text, key)
}

// Decode runs the decode path with base64 transport and no logging.
func Decode(ciphertext string, key []byte, table huffman.CodeTable, padding int) (string, error) {
	return defaultCodec.Decode(ciphertext, key, table, padding)
}
