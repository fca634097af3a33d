package passcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func TestCipher(t *testing.T) {
	c := NewCipher()

	t.Run("Round trip", func(t *testing.T) {
		for _, text := range []string{"", "a", "hello world", strings.Repeat("long secret ", 50), "ünïcödé ✓"} {
			ct, err := c.Encrypt("correct horse", text)
			require.NoError(t, err)
			assert.Len(t, ct, 2*len(text))
			assert.Equal(t, strings.ToLower(ct), ct)

			pt, err := c.Decrypt("correct horse", ct)
			require.NoError(t, err)
			assert.Equal(t, text, pt)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		first, err := c.Encrypt("pass", "payload")
		require.NoError(t, err)
		second, err := c.Encrypt("pass", "payload")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Matches AES-256-CTR with zero IV", func(t *testing.T) {
		key := pbkdf2.Key([]byte("pass"), nil, 1, 32, sha256.New)
		block, err := aes.NewCipher(key)
		require.NoError(t, err)
		want := make([]byte, 7)
		cipher.NewCTR(block, make([]byte, aes.BlockSize)).XORKeyStream(want, []byte("payload"))

		got, err := c.Encrypt("pass", "payload")
		require.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(want), got)
	})

	t.Run("Wrong passphrase yields garbage without error", func(t *testing.T) {
		ct, err := c.Encrypt("right", "top secret")
		require.NoError(t, err)

		pt, err := c.Decrypt("wrong", ct)
		require.NoError(t, err)
		assert.NotEqual(t, "top secret", pt)
		assert.Len(t, pt, len("top secret"))
	})

	t.Run("Prefixed ciphertext", func(t *testing.T) {
		ct, err := c.Encrypt("pass", "text")
		require.NoError(t, err)

		pt, err := c.Decrypt("pass", "0x"+ct)
		require.NoError(t, err)
		assert.Equal(t, "text", pt)
	})

	t.Run("Not hex", func(t *testing.T) {
		_, err := c.Decrypt("pass", "zz")
		assert.ErrorIs(t, err, ErrMalformedCiphertext)
	})
}
