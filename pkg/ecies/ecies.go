// Package ecies encrypts JSON payloads to a secp256k1 public key.
//
// The wire format is the one produced by go-ethereum's ECIES implementation:
//
//	ephemeral public key (65 bytes, uncompressed) ‖ IV (16) ‖ AES-128-CTR ciphertext ‖ HMAC-SHA256 (32)
//
// Keys are derived from the ECDH shared secret with the NIST SP 800-56 concat
// KDF. The whole blob travels as standard base64.
package ecies

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	ethecies "github.com/ethereum/go-ethereum/crypto/ecies"

	"github.com/erc7824/nitrolite/cryptokit/pkg/canon"
)

var (
	// ErrDecryptionAuthenticationFailed is returned when the MAC does not match,
	// which includes decrypting with the wrong key.
	ErrDecryptionAuthenticationFailed = errors.New("decryption authentication failed")
	// ErrMalformedPlaintext is returned when the authenticated plaintext is not JSON.
	ErrMalformedPlaintext = errors.New("malformed plaintext")
	// ErrMalformedCiphertext is returned when the ciphertext is not base64.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	// ErrInvalidTarget is returned when the decode target is not a non-nil pointer.
	ErrInvalidTarget = errors.New("decode target must be a non-nil pointer")
)

// Cipher is the hybrid cipher. The zero value is not usable, use NewCipher.
type Cipher struct {
	rand io.Reader
}

// NewCipher returns a Cipher drawing ephemeral keys and IVs from crypto/rand.
func NewCipher() *Cipher {
	return &Cipher{rand: rand.Reader}
}

// NewCipherWithRand returns a Cipher using r as its randomness source.
func NewCipherWithRand(r io.Reader) *Cipher {
	return &Cipher{rand: r}
}

// Seal encrypts raw bytes to pub.
func (c *Cipher) Seal(pub *ecdsa.PublicKey, plaintext []byte) ([]byte, error) {
	if pub == nil {
		return nil, errors.New("public key is nil")
	}
	ct, err := ethecies.Encrypt(c.rand, ethecies.ImportECDSAPublic(pub), plaintext, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}
	return ct, nil
}

// Open authenticates and decrypts a sealed blob. No plaintext is returned
// unless the MAC verifies.
func (c *Cipher) Open(priv *ecdsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	if priv == nil {
		return nil, errors.New("private key is nil")
	}
	pt, err := ethecies.ImportECDSA(priv).Decrypt(ciphertext, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionAuthenticationFailed, err)
	}
	return pt, nil
}

// Encrypt serializes payload as canonical JSON and seals it to pub.
// Encrypting the same payload twice yields different ciphertexts.
func (c *Cipher) Encrypt(pub *ecdsa.PublicKey, payload any) (string, error) {
	plaintext, err := canon.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize payload: %w", err)
	}
	defer clear(plaintext)

	ct, err := c.Seal(pub, plaintext)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ct), nil
}

// Decrypt opens ciphertext and unmarshals the JSON payload into out, which
// must be a non-nil pointer. out is written only when decoding succeeds.
func (c *Cipher) Decrypt(priv *ecdsa.PrivateKey, ciphertext string, out any) error {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("%w: %T", ErrInvalidTarget, out)
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}

	plaintext, err := c.Open(priv, raw)
	if err != nil {
		return err
	}
	defer clear(plaintext)

	if !json.Valid(plaintext) {
		return ErrMalformedPlaintext
	}
	decoded := reflect.New(target.Type().Elem())
	if err := json.Unmarshal(plaintext, decoded.Interface()); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPlaintext, err)
	}
	target.Elem().Set(decoded.Elem())
	return nil
}
