package toolkit

import (
	"crypto/ecdsa"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/erc7824/nitrolite/cryptokit/pkg/ecies"
	"github.com/erc7824/nitrolite/cryptokit/pkg/passcrypt"
	"github.com/erc7824/nitrolite/cryptokit/pkg/sign"
	"github.com/erc7824/nitrolite/cryptokit/pkg/txsign"
)

var (
	_ Hasher            = Keccak256Hasher{}
	_ KeyAgreement      = (*ecies.Cipher)(nil)
	_ SymmetricCipher   = passcrypt.Cipher{}
	_ TransactionSigner = (*txsign.TxSigner)(nil)
)

// Hasher computes the 32-byte digest of canonical bytes.
type Hasher interface {
	Hash(data []byte) sign.Digest
}

// Keccak256Hasher is the legacy Keccak-256 used by Ethereum, not NIST SHA3-256.
type Keccak256Hasher struct{}

func (Keccak256Hasher) Hash(data []byte) sign.Digest {
	return sign.Digest(ethcrypto.Keccak256Hash(data))
}

// SignerFactory builds a signer from a hex private key.
type SignerFactory func(privateKeyHex string) (sign.Signer, error)

// KeyAgreement is the public-key (hybrid) cipher.
type KeyAgreement interface {
	Encrypt(pub *ecdsa.PublicKey, payload any) (string, error)
	Decrypt(priv *ecdsa.PrivateKey, ciphertext string, out any) error
}

// SymmetricCipher is the passphrase cipher.
type SymmetricCipher interface {
	Encrypt(passphrase, plaintext string) (string, error)
	Decrypt(passphrase, ciphertext string) (string, error)
}

// TransactionSigner encodes and signs a transaction with the given signer.
type TransactionSigner interface {
	Sign(utx txsign.UnsignedTransaction, signer sign.Signer) (txsign.SignedTransaction, error)
}
