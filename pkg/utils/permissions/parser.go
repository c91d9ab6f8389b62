// Package permissions parses the file modes used for files the CLI writes.
package permissions

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultFilePerms is user-only read/write. Encode output includes the key.
const DefaultFilePerms = 0o600

// ParseOctalString parses an octal permission string into a uint16.
// Handles formats like "600", "0600", "0o600". Empty yields DefaultFilePerms.
func ParseOctalString(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultFilePerms, nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0")
	if digits == "" {
		digits = "0"
	}

	val, err := strconv.ParseUint(digits, 8, 16)
	if err != nil {
		return DefaultFilePerms, fmt.Errorf("invalid permission string %q: %w", s, err)
	}
	if val > 0o777 {
		return DefaultFilePerms, fmt.Errorf("invalid permission string %q: only permission bits are allowed", s)
	}

	return uint16(val), nil
}

// FormatOctal formats a permission value as an octal string
func FormatOctal(perm uint16) string {
	return fmt.Sprintf("0%o", perm)
}

// FileMode parses s and checks that the owner can read and write the file.
func FileMode(s string) (os.FileMode, error) {
	perm, err := ParseOctalString(s)
	if err != nil {
		return 0, err
	}
	if !OwnerReadWrite(perm) {
		return 0, fmt.Errorf("file mode %s does not let the owner read and write", FormatOctal(perm))
	}
	return os.FileMode(perm), nil
}

// OwnerReadWrite checks if permissions include read and write for owner
func OwnerReadWrite(perm uint16) bool {
	return perm&0o600 == 0o600
}

// IsGroupOrWorldReadable reports whether anyone but the owner can read.
func IsGroupOrWorldReadable(perm uint16) bool {
	return perm&0o044 != 0
}
