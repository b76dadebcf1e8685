// Package sharecode implements the share code generator backing habit sharing.
package sharecode

import (
	"crypto/rand"

	"stride/internal/domain/service"
	"stride/internal/errors"
)

// CodeLength is the fixed length of every share code.
const CodeLength = 6

// Alphabet is the uppercase alphanumeric alphabet codes are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type generator struct{}

// NewGenerator returns a crypto/rand backed share code generator.
func NewGenerator() service.ShareCodeGenerator {
	return &generator{}
}

// Generate returns a 6-character uppercase alphanumeric code. Uniqueness is
// best-effort by construction; callers that need stronger guarantees check
// the store before committing a code.
func (g *generator) Generate() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes for share code")
	}

	for i, b := range buf {
		buf[i] = Alphabet[int(b)%len(Alphabet)]
	}

	return string(buf), nil
}
