// Package passcrypt is a passphrase keyed stream cipher.
//
// The key is PBKDF2-HMAC-SHA256 over the passphrase with an empty salt and a
// single iteration; the cipher is AES-256 in CTR mode starting from an
// all-zero counter block. The same passphrase and plaintext always give the
// same ciphertext, and there is no integrity check: decrypting with the
// wrong passphrase or a corrupted ciphertext yields garbage, not an error.
// Do not reuse a passphrase for more than one secret.
package passcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeyLength is the derived AES key size in bytes.
	KeyLength = 32
	// Iterations is the PBKDF2 round count.
	Iterations = 1
)

// ErrMalformedCiphertext is returned when the ciphertext is not hex.
var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// Cipher implements the passphrase cipher. It has no state.
type Cipher struct{}

// NewCipher returns a Cipher.
func NewCipher() Cipher { return Cipher{} }

// Encrypt returns the unprefixed lowercase hex ciphertext of plaintext.
func (Cipher) Encrypt(passphrase, plaintext string) (string, error) {
	out, err := xorKeyStream(passphrase, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(out), nil
}

// Decrypt inverts Encrypt. A "0x" prefix on the ciphertext is tolerated.
func (Cipher) Decrypt(passphrase, ciphertext string) (string, error) {
	if len(ciphertext) >= 2 && ciphertext[0] == '0' && (ciphertext[1] == 'x' || ciphertext[1] == 'X') {
		ciphertext = ciphertext[2:]
	}
	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	out, err := xorKeyStream(passphrase, raw)
	if err != nil {
		return "", err
	}
	defer clear(out)
	return string(out), nil
}

func deriveKey(passphrase string) []byte {
	return pbkdf2.Key([]byte(passphrase), nil, Iterations, KeyLength, sha256.New)
}

func xorKeyStream(passphrase string, in []byte) ([]byte, error) {
	key := deriveKey(passphrase)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	iv := make([]byte, aes.BlockSize)
	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)
	return out, nil
}
