package sharecode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	gen := NewGenerator()

	code, err := gen.Generate()
	require.NoError(t, err)
	assert.Len(t, code, CodeLength)

	for _, r := range code {
		assert.Contains(t, Alphabet, string(r))
	}

	// Codes are already uppercase; normalizing must be a no-op.
	assert.Equal(t, strings.ToUpper(code), code)
}

func TestGenerator_Dispersion(t *testing.T) {
	gen := NewGenerator()

	seen := make(map[string]struct{})
	for range 1000 {
		code, err := gen.Generate()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}

	// 36^6 possible codes; 1000 draws colliding would point at a broken
	// random source. Allow a little slack anyway.
	assert.Greater(t, len(seen), 990)
}
