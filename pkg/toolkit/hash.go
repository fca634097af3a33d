package toolkit

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/erc7824/nitrolite/cryptokit/pkg/canon"
	"github.com/erc7824/nitrolite/cryptokit/pkg/sign"
)

const saltEntropyBytes = 256

// GetHash canonicalizes v and returns its digest as 0x-prefixed hex.
// Strings are hashed verbatim, including any "0x" prefix.
func (s *Service) GetHash(v any) (string, error) {
	digest, err := s.hashValue(v)
	s.observe("get_hash", err)
	if err != nil {
		return "", err
	}
	return digest.String(), nil
}

// GetSalt returns the digest of the hex text of 256 fresh random bytes.
func (s *Service) GetSalt() (string, error) {
	entropy := make([]byte, saltEntropyBytes)
	defer clear(entropy)

	if _, err := io.ReadFull(s.cfg.Rand, entropy); err != nil {
		s.observe("get_salt", err)
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	s.observe("get_salt", nil)
	return s.cfg.Hasher.Hash([]byte(hex.EncodeToString(entropy))).String(), nil
}

// IsHash reports whether str is exactly 64 hex characters, after an optional 0x prefix.
func IsHash(str string) bool {
	return isDigestHex(trimHexPrefix(str))
}

// isDigestHex is IsHash without prefix handling.
func isDigestHex(str string) bool {
	if len(str) != 2*sign.DigestLength {
		return false
	}
	for i := 0; i < len(str); i++ {
		if !isHexDigit(str[i]) {
			return false
		}
	}
	return true
}

// IsHash is the method form of the package level IsHash.
func (s *Service) IsHash(str string) bool { return IsHash(str) }

func (s *Service) hashValue(v any) (sign.Digest, error) {
	data, err := canon.Encode(v)
	if err != nil {
		return sign.Digest{}, err
	}
	return s.cfg.Hasher.Hash(data), nil
}

// messageDigest resolves what Sign and Verify operate on.
func (s *Service) messageDigest(msg any) (sign.Digest, error) {
	switch m := msg.(type) {
	case sign.Digest:
		return m, nil
	case *sign.Digest:
		if m == nil {
			return sign.Digest{}, fmt.Errorf("%w: nil digest", ErrUnsupportedInputType)
		}
		return *m, nil
	case string:
		m = trimHexPrefix(m)
		if isDigestHex(m) {
			raw, err := hex.DecodeString(m)
			if err != nil {
				return sign.Digest{}, err
			}
			return sign.DigestFromBytes(raw)
		}
		return s.hashValue(m)
	}
	return s.hashValue(msg)
}

func trimHexPrefix(str string) string {
	if len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X') {
		return str[2:]
	}
	return str
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
