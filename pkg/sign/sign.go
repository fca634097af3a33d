package sign

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrMalformedSignature is returned when r, s or v are not well-formed.
var ErrMalformedSignature = errors.New("malformed signature")

const (
	// SignatureLength is the length of the r‖s‖v form.
	SignatureLength = 65
	// DigestLength is the length of a keccak-256 digest.
	DigestLength = 32

	// RecoveryIDOffset is added to the recovery id of bare message signatures.
	RecoveryIDOffset = 27
)

// Signer is an interface for a secp256k1 signer.
type Signer interface {
	PublicKey() PublicKey                // Public key associated with this signer.
	Sign(hash []byte) (Signature, error) // Sign signs a 32-byte digest.
}

// PublicKeyRecoverer recovers the signing public key from a digest.
type PublicKeyRecoverer interface {
	RecoverPublicKey(hash []byte, signature Signature) (PublicKey, error)
}

// PublicKey is an interface for a public key.
type PublicKey interface {
	Address() Address
	Bytes() []byte
}

// Address is an interface for a blockchain address.
type Address interface {
	fmt.Stringer

	// Equals returns true if this address equals the other address.
	Equals(other Address) bool
}

// Digest is an already-hashed message. Passing a Digest tells the signing
// code not to hash again, whatever its textual form looks like.
type Digest [DigestLength]byte

// DigestFromBytes copies b into a Digest.
func DigestFromBytes(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestLength {
		return d, fmt.Errorf("invalid digest length: got %d, want %d", len(b), DigestLength)
	}
	copy(d[:], b)
	return d, nil
}

func (d Digest) Bytes() []byte  { return d[:] }
func (d Digest) String() string { return hexutil.Encode(d[:]) }

// Signature is a 65-byte r‖s‖v signature with v in {27, 28}.
type Signature []byte

// R returns the r scalar bytes.
func (s Signature) R() []byte { return s[:32] }

// S returns the s scalar bytes.
func (s Signature) S() []byte { return s[32:64] }

// V returns the recovery byte.
func (s Signature) V() byte { return s[64] }

// Validate checks the length and the recovery byte.
func (s Signature) Validate() error {
	if len(s) != SignatureLength {
		return fmt.Errorf("%w: invalid signature length: got %d, want %d", ErrMalformedSignature, len(s), SignatureLength)
	}
	if v := s[64]; v != RecoveryIDOffset && v != RecoveryIDOffset+1 {
		return fmt.Errorf("%w: invalid recovery byte %d", ErrMalformedSignature, v)
	}
	return nil
}

// RecoveryID returns v as 0 or 1, the form go-ethereum expects.
func (s Signature) RecoveryID() byte {
	if s[64] >= RecoveryIDOffset {
		return s[64] - RecoveryIDOffset
	}
	return s[64]
}

// MarshalJSON implements the json.Marshaler interface, encoding the signature as a hex string.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	decoded, err := hexutil.Decode(hexStr)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// String implements the fmt.Stringer interface
func (s Signature) String() string {
	return hexutil.Encode(s)
}

// Components is the {r, s, v} form of a signature.
// V is 27/28 for messages or chainId*2+35/36 for replay protected transactions.
type Components struct {
	R string `json:"r"`
	S string `json:"s"`
	V uint64 `json:"v"`
}

// UnmarshalJSON accepts either the {r, s, v} object or the compact 65-byte
// signature as a hex string.
func (c *Components) UnmarshalJSON(data []byte) error {
	if data = bytes.TrimSpace(data); len(data) > 0 && data[0] == '"' {
		var sig Signature
		if err := json.Unmarshal(data, &sig); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
		}
		if len(sig) != SignatureLength {
			return fmt.Errorf("%w: invalid signature length: got %d, want %d", ErrMalformedSignature, len(sig), SignatureLength)
		}
		*c = sig.Components()
		return nil
	}

	type plain Components
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Components(p)
	return nil
}

// Components splits the signature into its boundary form.
func (s Signature) Components() Components {
	return Components{
		R: hexutil.Encode(s.R()),
		S: hexutil.Encode(s.S()),
		V: uint64(s.V()),
	}
}

// Signature joins the components into the 65-byte form with v normalized
// to 27/28. It accepts v as 0/1, 27/28 or an EIP-155 value (>= 35).
func (c Components) Signature() (Signature, error) {
	r, err := decodeScalar("r", c.R)
	if err != nil {
		return nil, err
	}
	s, err := decodeScalar("s", c.S)
	if err != nil {
		return nil, err
	}

	var recID byte
	switch {
	case c.V == 0 || c.V == 1:
		recID = byte(c.V)
	case c.V == RecoveryIDOffset || c.V == RecoveryIDOffset+1:
		recID = byte(c.V - RecoveryIDOffset)
	case c.V >= 35:
		recID = byte((c.V - 35) % 2)
	default:
		return nil, fmt.Errorf("%w: invalid v %d", ErrMalformedSignature, c.V)
	}

	sig := make(Signature, SignatureLength)
	copy(sig[32-len(r):32], r)
	copy(sig[64-len(s):64], s)
	sig[64] = recID + RecoveryIDOffset
	return sig, nil
}

// decodeScalar decodes an optionally 0x-prefixed hex scalar of at most 32 bytes.
// Shorter values are treated as big-endian and left-padded.
func decodeScalar(name, value string) ([]byte, error) {
	if len(value) >= 2 && value[0] == '0' && (value[1] == 'x' || value[1] == 'X') {
		value = value[2:]
	}
	if value == "" || len(value) > 2*DigestLength {
		return nil, fmt.Errorf("%w: %s must be 1 to 32 bytes of hex", ErrMalformedSignature, name)
	}
	if len(value)%2 == 1 {
		value = "0" + value
	}
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not hex", ErrMalformedSignature, name)
	}
	return b, nil
}
