package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLoginCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := GenerateLoginCode()
		require.NoError(t, err)
		require.Len(t, code, LoginCodeLength)
		for _, ch := range code {
			assert.True(t, ch >= '0' && ch <= '9', "non-digit %q in code %s", ch, code)
		}
		seen[code] = struct{}{}
	}
	// Fifty draws colliding down to a couple of values would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 10)
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******4111", MaskPhone("9452624111"))
	assert.Equal(t, "123", MaskPhone("123"))
	assert.Equal(t, "", MaskPhone(""))
}
