package toolkit

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/erc7824/nitrolite/cryptokit/pkg/hd"
	"github.com/erc7824/nitrolite/cryptokit/pkg/sign"
)

// GenerateMnemonic returns a new mnemonic with the configured strength.
func (s *Service) GenerateMnemonic() (string, error) {
	mnemonic, err := hd.NewMnemonic(s.cfg.MnemonicStrength)
	s.observe("generate_mnemonic", err)
	return mnemonic, err
}

// DeriveAccount derives the account at the configured path.
// An empty passphrase is the BIP-39 default.
func (s *Service) DeriveAccount(mnemonic, passphrase string) (hd.Account, error) {
	return s.deriveAccount(mnemonic, passphrase, s.path)
}

// DeriveAccountAt derives the account at an explicit path such as "m/44'/60'/0'/0/1".
func (s *Service) DeriveAccountAt(mnemonic, passphrase, path string) (hd.Account, error) {
	dp, err := hd.ParsePath(path)
	if err != nil {
		s.observe("derive_account", err)
		return hd.Account{}, fmt.Errorf("%w: %v", ErrInvalidDerivationPath, err)
	}
	return s.deriveAccount(mnemonic, passphrase, dp)
}

func (s *Service) deriveAccount(mnemonic, passphrase string, path accounts.DerivationPath) (hd.Account, error) {
	account, err := hd.Derive(mnemonic, passphrase, path)
	s.observe("derive_account", err)
	if err != nil {
		return hd.Account{}, err
	}
	s.cfg.Logger.Debug("account derived", "path", path.String(), "address", account.Address)
	return account, nil
}

// GetCredentials creates a fresh mnemonic and derives its account.
func (s *Service) GetCredentials() (hd.Account, error) {
	mnemonic, err := s.GenerateMnemonic()
	if err != nil {
		return hd.Account{}, err
	}
	return s.DeriveAccount(mnemonic, "")
}

// RestoreCredentials derives the account of an existing mnemonic without passphrase.
func (s *Service) RestoreCredentials(mnemonic string) (hd.Account, error) {
	return s.DeriveAccount(mnemonic, "")
}

// PublicKeyToAddress returns the address of a 64-byte or 0x04-prefixed 65-byte public key.
func (s *Service) PublicKeyToAddress(publicKeyHex string) (string, error) {
	pub, err := parsePublicKey(publicKeyHex)
	s.observe("public_key_to_address", err)
	if err != nil {
		return "", err
	}
	return sign.NewEthereumPublicKey(pub).Address().String(), nil
}

func parsePublicKey(publicKeyHex string) (*ecdsa.PublicKey, error) {
	raw, err := hexutil.Decode("0x" + trimHexPrefix(publicKeyHex))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	pub, err := sign.NewEthereumPublicKeyFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pub.PublicKey, nil
}

func parsePrivateKey(privateKeyHex string) (*ecdsa.PrivateKey, error) {
	key, err := sign.ParsePrivateKey(trimHexPrefix(privateKeyHex))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return key, nil
}

func (s *Service) newSigner(privateKeyHex string) (sign.Signer, error) {
	signer, err := s.cfg.NewSigner(trimHexPrefix(privateKeyHex))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return signer, nil
}
