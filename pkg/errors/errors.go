// Package errors defines the sentinel errors reported by huffcrypt.
// Callers match them with errors.Is; every package wraps them with context.
package errors

import "errors"

var (
	// Cipher errors 🔑
	ErrEmptyKey = errors.New("❌ cipher key must not be empty")

	// Codec errors 🌳
	ErrSymbolNotInTable = errors.New("❌ symbol has no entry in code table")
	ErrUnknownSymbol    = errors.New("❌ bit sequence matches no code")
	ErrInvalidPadding   = errors.New("❌ invalid padding")
	ErrInvalidCodeTable = errors.New("❌ invalid code table")
	ErrInvalidText      = errors.New("❌ text is not valid UTF-8")

	// Transport errors 📨
	ErrMalformedTransport = errors.New("❌ malformed transport encoding")

	// Envelope errors 📦
	ErrInvalidMagic       = errors.New("❌ invalid envelope magic")
	ErrUnsupportedVersion = errors.New("❌ unsupported envelope version")
	ErrDigestMismatch     = errors.New("❌ envelope digest mismatch")
)
