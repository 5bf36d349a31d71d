package security

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgonRoundTrip(t *testing.T) {
	a := New()

	encoded, err := a.GenerateFromPassword("password123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))
	assert.NotContains(t, encoded, "password123")

	ok, err := a.VerifyPasswd("password123", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("password124", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgonSaltsDiffer(t *testing.T) {
	a := New()

	first, err := a.GenerateFromPassword("password123")
	require.NoError(t, err)
	second, err := a.GenerateFromPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgonRejectsGarbageHash(t *testing.T) {
	a := New()

	_, err := a.VerifyPasswd("password123", "not-a-hash")
	assert.Error(t, err)
}

func TestMakeVerifyCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := MakeVerifyCode(6)
		require.NoError(t, err)
		require.Len(t, code, 6)

		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestMakeResetToken(t *testing.T) {
	first, err := MakeResetToken()
	require.NoError(t, err)
	assert.Len(t, first, 64)

	_, err = hex.DecodeString(first)
	require.NoError(t, err)

	second, err := MakeResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
