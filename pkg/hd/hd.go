// Package hd derives secp256k1 accounts from BIP-39 mnemonics along BIP-32
// paths. The default path is the first external account of the Ethereum
// coin type, m/44'/60'/0'/0/0.
package hd

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

const (
	// DefaultEntropyBits is the strength of new mnemonics (12 words).
	DefaultEntropyBits = 128
)

var (
	// ErrInvalidMnemonic is returned for a bad checksum or an unknown word.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrInvalidStrength is returned for entropy sizes BIP-39 does not define.
	ErrInvalidStrength = errors.New("invalid mnemonic strength")
)

// DefaultPath returns a copy of m/44'/60'/0'/0/0.
func DefaultPath() accounts.DerivationPath {
	path := make(accounts.DerivationPath, len(accounts.DefaultBaseDerivationPath))
	copy(path, accounts.DefaultBaseDerivationPath)
	return path
}

// ParsePath parses a textual derivation path such as "m/44'/60'/0'/0/1".
func ParsePath(path string) (accounts.DerivationPath, error) {
	return accounts.ParseDerivationPath(path)
}

// NewMnemonic creates a mnemonic from fresh random entropy.
// bits must be a multiple of 32 between 128 and 256.
func NewMnemonic(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("%w: %d bits: %v", ErrInvalidStrength, bits, err)
	}
	defer clear(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to encode mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks the word list and checksum.
func ValidateMnemonic(mnemonic string) error {
	if _, err := bip39.EntropyFromMnemonic(mnemonic); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return nil
}

// NewSeed stretches the mnemonic and optional passphrase into a 512-bit seed.
// The caller owns the returned slice and should clear it after use.
func NewSeed(mnemonic, passphrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return seed, nil
}

// DeriveKey walks path from the master key of seed.
func DeriveKey(seed []byte, path accounts.DerivationPath) (*ecdsa.PrivateKey, error) {
	// The network params only affect the xprv/xpub version bytes, which are never serialized here.
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	for _, index := range path {
		key, err = key.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("failed to derive child %d of %s: %w", index, path, err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to extract private key: %w", err)
	}
	raw := priv.Serialize()
	defer clear(raw)

	return ethcrypto.ToECDSA(raw)
}

// Account is a derived keypair with its address, all 0x-prefixed lowercase hex.
// PublicKey is the 64-byte X‖Y form without the 0x04 prefix byte.
type Account struct {
	Address    string `json:"address"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	Mnemonic   string `json:"mnemonic,omitempty"`
}

// NewAccount builds an Account from a private key.
func NewAccount(key *ecdsa.PrivateKey, mnemonic string) Account {
	pub := ethcrypto.FromECDSAPub(&key.PublicKey)
	addr := ethcrypto.PubkeyToAddress(key.PublicKey)
	return Account{
		Address:    hexutil.Encode(addr.Bytes()),
		PublicKey:  hexutil.Encode(pub[1:]),
		PrivateKey: hexutil.Encode(ethcrypto.FromECDSA(key)),
		Mnemonic:   mnemonic,
	}
}

// Derive turns a mnemonic into the Account at path.
// Identical inputs always produce an identical Account.
func Derive(mnemonic, passphrase string, path accounts.DerivationPath) (Account, error) {
	seed, err := NewSeed(mnemonic, passphrase)
	if err != nil {
		return Account{}, err
	}
	defer clear(seed)

	key, err := DeriveKey(seed, path)
	if err != nil {
		return Account{}, err
	}
	return NewAccount(key, mnemonic), nil
}
