package toolkit

import (
	"errors"
	"fmt"

	"github.com/erc7824/nitrolite/cryptokit/pkg/passcrypt"
)

// Encrypt serializes payload as JSON and encrypts it to the hex public key.
// The result is base64 and differs on every call.
func (s *Service) Encrypt(publicKeyHex string, payload any) (string, error) {
	ct, err := s.encrypt(publicKeyHex, payload)
	s.observe("encrypt", err)
	return ct, err
}

func (s *Service) encrypt(publicKeyHex string, payload any) (string, error) {
	pub, err := parsePublicKey(publicKeyHex)
	if err != nil {
		return "", err
	}
	return s.cfg.KeyAgreement.Encrypt(pub, payload)
}

// Decrypt authenticates and decrypts ciphertext with the hex private key and
// unmarshals the payload into out, which must be a pointer. out is left
// untouched on error.
func (s *Service) Decrypt(privateKeyHex, ciphertext string, out any) error {
	err := s.decrypt(privateKeyHex, ciphertext, out)
	s.observe("decrypt", err)
	return err
}

func (s *Service) decrypt(privateKeyHex, ciphertext string, out any) error {
	key, err := parsePrivateKey(privateKeyHex)
	if err != nil {
		return err
	}
	defer clear(key.D.Bits())

	if err := s.cfg.KeyAgreement.Decrypt(key, ciphertext, out); err != nil {
		reason := "other"
		switch {
		case errors.Is(err, ErrDecryptionAuthenticationFailed):
			reason = "authentication"
		case errors.Is(err, ErrMalformedPlaintext):
			reason = "plaintext"
		case errors.Is(err, ErrMalformedCiphertext):
			reason = "ciphertext"
		case errors.Is(err, ErrInvalidDecryptTarget):
			reason = "target"
		}
		s.cfg.Logger.Warn("decryption failed", "reason", reason)
		s.cfg.Metrics.ObserveDecryptionFailure(reason)
		return err
	}
	return nil
}

// EncryptAES encrypts text under passphrase and returns unprefixed hex.
// The output is deterministic and unauthenticated.
func (s *Service) EncryptAES(passphrase, text string) (string, error) {
	ct, err := s.cfg.SymmetricCipher.Encrypt(passphrase, text)
	s.observe("encrypt_aes", err)
	return ct, err
}

// DecryptAES inverts EncryptAES. A wrong passphrase is not detected and
// yields garbage text.
func (s *Service) DecryptAES(passphrase, ciphertextHex string) (string, error) {
	text, err := s.cfg.SymmetricCipher.Decrypt(passphrase, ciphertextHex)
	if errors.Is(err, passcrypt.ErrMalformedCiphertext) {
		err = fmt.Errorf("%w: %w", ErrMalformedCiphertext, err)
	}
	s.observe("decrypt_aes", err)
	return text, err
}
