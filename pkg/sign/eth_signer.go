package sign

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Ensure our types implement the interfaces at compile time.
var _ Signer = (*EthereumSigner)(nil)
var _ PublicKeyRecoverer = (*EthereumRecoverer)(nil)
var _ PublicKey = (*EthereumPublicKey)(nil)
var _ Address = (*EthereumAddress)(nil)

// EthereumAddress implements the Address interface for Ethereum.
type EthereumAddress struct{ common.Address }

// String returns the lowercase 0x-prefixed hex form, not the EIP-55 checksum.
func (a EthereumAddress) String() string { return hexutil.Encode(a.Address.Bytes()) }

// Equals returns true if this address equals the other address.
func (a EthereumAddress) Equals(other Address) bool {
	if otherAddr, ok := other.(EthereumAddress); ok {
		return a.Address == otherAddr.Address
	}
	return strings.EqualFold(a.String(), other.String())
}

// EthereumPublicKey implements the PublicKey interface for Ethereum.
type EthereumPublicKey struct{ *ecdsa.PublicKey }

func (p EthereumPublicKey) Address() Address {
	return EthereumAddress{ethcrypto.PubkeyToAddress(*p.PublicKey)}
}

// Bytes returns the 65-byte uncompressed encoding, 0x04 prefix included.
func (p EthereumPublicKey) Bytes() []byte { return ethcrypto.FromECDSAPub(p.PublicKey) }

// Hex returns the 64-byte X‖Y encoding (prefix byte dropped) as 0x-prefixed hex.
func (p EthereumPublicKey) Hex() string { return hexutil.Encode(p.Bytes()[1:]) }

// NewEthereumPublicKey creates a new Ethereum public key from an ECDSA public key.
func NewEthereumPublicKey(pub *ecdsa.PublicKey) EthereumPublicKey {
	return EthereumPublicKey{pub}
}

// NewEthereumPublicKeyFromBytes parses a 65-byte uncompressed key or a
// 64-byte X‖Y key without the prefix byte.
func NewEthereumPublicKeyFromBytes(pubBytes []byte) (EthereumPublicKey, error) {
	if len(pubBytes) == 64 {
		pubBytes = append([]byte{0x04}, pubBytes...)
	}
	pub, err := ethcrypto.UnmarshalPubkey(pubBytes)
	if err != nil {
		return EthereumPublicKey{}, fmt.Errorf("failed to unmarshal public key: %w", err)
	}
	return EthereumPublicKey{pub}, nil
}

// EthereumSigner is the Ethereum implementation of the Signer interface.
type EthereumSigner struct {
	privateKey *ecdsa.PrivateKey
	publicKey  EthereumPublicKey
}

func (s *EthereumSigner) PublicKey() PublicKey { return s.publicKey }

// Sign expects the input data to be a hash (e.g., Keccak256 hash).
// The nonce is derived deterministically (RFC 6979).
func (s *EthereumSigner) Sign(hash []byte) (Signature, error) {
	if len(hash) != DigestLength {
		return nil, fmt.Errorf("invalid hash length: got %d, want %d", len(hash), DigestLength)
	}
	sig, err := ethcrypto.Sign(hash, s.privateKey)
	if err != nil {
		return nil, err
	}
	// Adjust V from 0/1 to 27/28 for Ethereum compatibility.
	if sig[64] < RecoveryIDOffset {
		sig[64] += RecoveryIDOffset
	}
	return Signature(sig), nil
}

// NewEthereumSigner creates a new Ethereum signer from a hex-encoded private key.
func NewEthereumSigner(privateKeyHex string) (Signer, error) {
	key, err := ParsePrivateKey(privateKeyHex)
	if err != nil {
		return nil, err
	}
	return NewEthereumSignerFromKey(key), nil
}

// NewEthereumSignerFromKey wraps an already parsed key.
func NewEthereumSignerFromKey(key *ecdsa.PrivateKey) *EthereumSigner {
	return &EthereumSigner{
		privateKey: key,
		publicKey:  EthereumPublicKey{&key.PublicKey},
	}
}

// ParsePrivateKey parses a 32-byte hex private key, with or without 0x.
func ParsePrivateKey(privateKeyHex string) (*ecdsa.PrivateKey, error) {
	privateKeyHex = strings.TrimPrefix(privateKeyHex, "0x")
	key, err := ethcrypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("could not parse ethereum private key: %w", err)
	}
	return key, nil
}

// EthereumRecoverer implements public key recovery for Ethereum.
type EthereumRecoverer struct{}

// RecoverPublicKey implements the PublicKeyRecoverer interface.
func (r *EthereumRecoverer) RecoverPublicKey(hash []byte, signature Signature) (PublicKey, error) {
	return RecoverPublicKeyFromHash(hash, signature)
}

// RecoverPublicKeyFromHash recovers the public key from a signature over a pre-computed hash.
func RecoverPublicKeyFromHash(hash []byte, sig Signature) (EthereumPublicKey, error) {
	if len(sig) != SignatureLength {
		return EthereumPublicKey{}, fmt.Errorf("%w: invalid signature length", ErrMalformedSignature)
	}
	localSig := make([]byte, SignatureLength)
	copy(localSig, sig)
	localSig[64] = sig.RecoveryID()
	pubKey, err := ethcrypto.SigToPub(hash, localSig)
	if err != nil {
		return EthereumPublicKey{}, fmt.Errorf("signature recovery failed: %w", err)
	}
	return EthereumPublicKey{pubKey}, nil
}
