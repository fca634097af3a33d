package toolkit_test

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erc7824/nitrolite/cryptokit/pkg/toolkit"
)

func TestHybridCipher(t *testing.T) {
	svc := newTestService(t, toolkit.ServiceConfig{})
	payload := map[string]any{"user": "alice", "scopes": []any{"read", "write"}, "n": 3.0}

	t.Run("Round trip", func(t *testing.T) {
		ct, err := svc.Encrypt(fixturePublicKey, payload)
		require.NoError(t, err)
		_, err = base64.StdEncoding.DecodeString(ct)
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, svc.Decrypt(fixturePrivateKey, ct, &out))
		assert.Equal(t, payload, out)
	})

	t.Run("Prefixed uncompressed key", func(t *testing.T) {
		ct, err := svc.Encrypt("04"+strings.TrimPrefix(fixturePublicKey, "0x"), "plain")
		require.NoError(t, err)

		var out string
		require.NoError(t, svc.Decrypt(strings.TrimPrefix(fixturePrivateKey, "0x"), ct, &out))
		assert.Equal(t, "plain", out)
	})

	t.Run("Probabilistic", func(t *testing.T) {
		first, err := svc.Encrypt(fixturePublicKey, payload)
		require.NoError(t, err)
		second, err := svc.Encrypt(fixturePublicKey, payload)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("Wrong key", func(t *testing.T) {
		ct, err := svc.Encrypt(fixturePublicKey, payload)
		require.NoError(t, err)
		other, err := svc.DeriveAccount(abandonMnemonic, "")
		require.NoError(t, err)

		var out map[string]any
		err = svc.Decrypt(other.PrivateKey, ct, &out)
		assert.ErrorIs(t, err, toolkit.ErrDecryptionAuthenticationFailed)
		assert.Nil(t, out)
	})

	t.Run("Bad keys and ciphertexts", func(t *testing.T) {
		_, err := svc.Encrypt("0x1234", payload)
		assert.ErrorIs(t, err, toolkit.ErrInvalidPublicKey)

		var out map[string]any
		assert.ErrorIs(t, svc.Decrypt("0x12", "AAAA", &out), toolkit.ErrInvalidPrivateKey)
		assert.ErrorIs(t, svc.Decrypt(fixturePrivateKey, "***", &out), toolkit.ErrMalformedCiphertext)
	})
}

type countingReader struct {
	n int
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := rand.Read(p)
	r.n += n
	return n, err
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestHybridCipherRandomness(t *testing.T) {
	t.Run("Injected source", func(t *testing.T) {
		r := &countingReader{}
		svc := newTestService(t, toolkit.ServiceConfig{Rand: r})

		ct, err := svc.Encrypt(fixturePublicKey, "plain")
		require.NoError(t, err)
		assert.Positive(t, r.n)

		var out string
		require.NoError(t, svc.Decrypt(fixturePrivateKey, ct, &out))
		assert.Equal(t, "plain", out)
	})

	t.Run("Failing source", func(t *testing.T) {
		svc := newTestService(t, toolkit.ServiceConfig{Rand: failingReader{}})
		_, err := svc.Encrypt(fixturePublicKey, "plain")
		assert.Error(t, err)
	})
}

func TestHybridCipherDecodeTarget(t *testing.T) {
	svc := newTestService(t, toolkit.ServiceConfig{})

	type record struct {
		A string `json:"a"`
		B int    `json:"b"`
	}
	ct, err := svc.Encrypt(fixturePublicKey, map[string]any{"a": "decoded", "b": "not-an-int"})
	require.NoError(t, err)

	t.Run("Mismatched field leaves target untouched", func(t *testing.T) {
		var out record
		err := svc.Decrypt(fixturePrivateKey, ct, &out)
		assert.ErrorIs(t, err, toolkit.ErrMalformedPlaintext)
		assert.Equal(t, record{}, out)
	})

	t.Run("Non-pointer target", func(t *testing.T) {
		var out record
		assert.ErrorIs(t, svc.Decrypt(fixturePrivateKey, ct, out), toolkit.ErrInvalidDecryptTarget)
	})
}

func TestPassphraseCipher(t *testing.T) {
	svc := newTestService(t, toolkit.ServiceConfig{})

	t.Run("Round trip", func(t *testing.T) {
		ct, err := svc.EncryptAES("passphrase", "my secret text")
		require.NoError(t, err)
		assert.False(t, strings.HasPrefix(ct, "0x"))

		pt, err := svc.DecryptAES("passphrase", ct)
		require.NoError(t, err)
		assert.Equal(t, "my secret text", pt)
	})

	t.Run("Wrong passphrase", func(t *testing.T) {
		ct, err := svc.EncryptAES("passphrase", "my secret text")
		require.NoError(t, err)

		pt, err := svc.DecryptAES("other", ct)
		require.NoError(t, err)
		assert.NotEqual(t, "my secret text", pt)
	})

	t.Run("Malformed ciphertext", func(t *testing.T) {
		_, err := svc.DecryptAES("passphrase", "not hex")
		assert.ErrorIs(t, err, toolkit.ErrMalformedCiphertext)
	})
}
