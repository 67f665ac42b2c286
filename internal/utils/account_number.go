package utils

import (
	"crypto/rand"
	"fmt"
)

// AccountNumberLength is the fixed width of generated account numbers.
const AccountNumberLength = 8

const digits = "0123456789"

// GenerateAccountNumber produces a random fixed-width numeric string using a
// cryptographically secure source. Uniqueness is not guaranteed here; the
// accounts table carries a UNIQUE constraint and callers regenerate on
// collision.
func GenerateAccountNumber() (string, error) {
	b := make([]byte, AccountNumberLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i := range b {
		b[i] = digits[int(b[i])%len(digits)]
	}
	return string(b), nil
}
