package tokens_test

import (
	"encoding/base64"
	"testing"

	"storefront/internal/tokens"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUIDRoundTrip(t *testing.T) {
	for _, id := range []uint{1, 7, 42, 1000, 987654321, ^uint(0)} {
		encoded := tokens.EncodeUID(id)
		assert.NotContains(t, encoded, "=")

		decoded, err := tokens.DecodeUID(encoded)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestEncodeUIDIsURLSafe(t *testing.T) {
	assert.Equal(t, "NDI", tokens.EncodeUID(42))
}

func TestDecodeUIDRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"padding":      "NDI=",
		"not base64":   "!!!",
		"non numeric":  base64.RawURLEncoding.EncodeToString([]byte("abc")),
		"negative":     base64.RawURLEncoding.EncodeToString([]byte("-5")),
		"zero":         base64.RawURLEncoding.EncodeToString([]byte("0")),
		"out of range": base64.RawURLEncoding.EncodeToString([]byte("99999999999999999999999999")),
		"leading zero": "MDc",
		"zero padded":  "MDAwNw",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.DecodeUID(input)
			assert.ErrorIs(t, err, tokens.ErrInvalidUID)
		})
	}
}

func TestDecodeUIDAcceptsOnlyCanonicalForm(t *testing.T) {
	id, err := tokens.DecodeUID("Nw")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	for _, fragment := range []string{"MDc", "MDAwNw", base64.RawURLEncoding.EncodeToString([]byte("+7"))} {
		_, err := tokens.DecodeUID(fragment)
		assert.ErrorIs(t, err, tokens.ErrInvalidUID, fragment)
	}
}
