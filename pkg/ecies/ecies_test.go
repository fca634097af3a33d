package ecies

import (
	"encoding/base64"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipherRoundTrip(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	c := NewCipher()

	t.Run("Structured payload", func(t *testing.T) {
		payload := map[string]any{
			"name":  "alice",
			"roles": []any{"admin", "user"},
			"meta":  map[string]any{"b": 2.0, "a": true},
		}
		ct, err := c.Encrypt(&key.PublicKey, payload)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, c.Decrypt(key, ct, &got))
		assert.Equal(t, payload, got)
	})

	t.Run("Scalar payload", func(t *testing.T) {
		ct, err := c.Encrypt(&key.PublicKey, "secret <text>")
		require.NoError(t, err)

		var got string
		require.NoError(t, c.Decrypt(key, ct, &got))
		assert.Equal(t, "secret <text>", got)
	})

	t.Run("Struct payload", func(t *testing.T) {
		type note struct {
			ID   int    `json:"id"`
			Body string `json:"body"`
		}
		ct, err := c.Encrypt(&key.PublicKey, note{ID: 7, Body: "hi"})
		require.NoError(t, err)

		var got note
		require.NoError(t, c.Decrypt(key, ct, &got))
		assert.Equal(t, note{ID: 7, Body: "hi"}, got)
	})
}

func TestCipherProbabilistic(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	c := NewCipher()

	first, err := c.Encrypt(&key.PublicKey, "same")
	require.NoError(t, err)
	second, err := c.Encrypt(&key.PublicKey, "same")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	raw, err := base64.StdEncoding.DecodeString(first)
	require.NoError(t, err)
	// 65 ephemeral key + 16 IV + 6 ciphertext ("same" quoted) + 32 MAC
	assert.Len(t, raw, 65+16+6+32)
	assert.Equal(t, byte(0x04), raw[0])
}

func TestCipherFailures(t *testing.T) {
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	other, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	c := NewCipher()

	ct, err := c.Encrypt(&key.PublicKey, map[string]any{"k": "v"})
	require.NoError(t, err)

	t.Run("Wrong key", func(t *testing.T) {
		var out map[string]any
		err := c.Decrypt(other, ct, &out)
		assert.ErrorIs(t, err, ErrDecryptionAuthenticationFailed)
		assert.Nil(t, out)
	})

	t.Run("Tampered MAC", func(t *testing.T) {
		raw, err := base64.StdEncoding.DecodeString(ct)
		require.NoError(t, err)
		raw[len(raw)-1] ^= 0x01

		var out map[string]any
		err = c.Decrypt(key, base64.StdEncoding.EncodeToString(raw), &out)
		assert.ErrorIs(t, err, ErrDecryptionAuthenticationFailed)
	})

	t.Run("Tampered ciphertext body", func(t *testing.T) {
		raw, err := base64.StdEncoding.DecodeString(ct)
		require.NoError(t, err)
		raw[65+16] ^= 0x01

		var out map[string]any
		err = c.Decrypt(key, base64.StdEncoding.EncodeToString(raw), &out)
		assert.ErrorIs(t, err, ErrDecryptionAuthenticationFailed)
	})

	t.Run("Truncated", func(t *testing.T) {
		var out map[string]any
		err := c.Decrypt(key, base64.StdEncoding.EncodeToString([]byte{0x04, 0x01}), &out)
		assert.ErrorIs(t, err, ErrDecryptionAuthenticationFailed)
	})

	t.Run("Not base64", func(t *testing.T) {
		var out map[string]any
		err := c.Decrypt(key, "%%%not-base64%%%", &out)
		assert.ErrorIs(t, err, ErrMalformedCiphertext)
	})

	t.Run("Authenticated but not JSON", func(t *testing.T) {
		sealed, err := c.Seal(&key.PublicKey, []byte("{not json"))
		require.NoError(t, err)

		var out map[string]any
		err = c.Decrypt(key, base64.StdEncoding.EncodeToString(sealed), &out)
		assert.ErrorIs(t, err, ErrMalformedPlaintext)
	})

	t.Run("Payload does not fit target", func(t *testing.T) {
		type record struct {
			A string `json:"a"`
			B int    `json:"b"`
		}
		mismatched, err := c.Encrypt(&key.PublicKey, map[string]any{"a": "kept-out", "b": "not-an-int"})
		require.NoError(t, err)

		out := record{A: "before"}
		err = c.Decrypt(key, mismatched, &out)
		assert.ErrorIs(t, err, ErrMalformedPlaintext)
		assert.Equal(t, record{A: "before"}, out)
	})

	t.Run("Non-pointer target", func(t *testing.T) {
		var out map[string]any
		assert.ErrorIs(t, c.Decrypt(key, ct, out), ErrInvalidTarget)
		assert.ErrorIs(t, c.Decrypt(key, ct, nil), ErrInvalidTarget)

		var nilPtr *map[string]any
		assert.ErrorIs(t, c.Decrypt(key, ct, nilPtr), ErrInvalidTarget)
	})

	t.Run("Unserializable payload", func(t *testing.T) {
		_, err := c.Encrypt(&key.PublicKey, map[string]any{"ch": make(chan int)})
		assert.Error(t, err)
	})
}
