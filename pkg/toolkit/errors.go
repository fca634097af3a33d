package toolkit

import (
	"errors"

	"github.com/erc7824/nitrolite/cryptokit/pkg/canon"
	"github.com/erc7824/nitrolite/cryptokit/pkg/ecies"
	"github.com/erc7824/nitrolite/cryptokit/pkg/hd"
	"github.com/erc7824/nitrolite/cryptokit/pkg/sign"
	"github.com/erc7824/nitrolite/cryptokit/pkg/txsign"
)

var (
	ErrUnsupportedInputType           = canon.ErrUnsupportedInputType
	ErrInvalidMnemonic                = hd.ErrInvalidMnemonic
	ErrMalformedSignature             = sign.ErrMalformedSignature
	ErrInvalidTransactionField        = txsign.ErrInvalidTransactionField
	ErrDecryptionAuthenticationFailed = ecies.ErrDecryptionAuthenticationFailed
	ErrMalformedPlaintext             = ecies.ErrMalformedPlaintext
	ErrMalformedCiphertext            = ecies.ErrMalformedCiphertext
	ErrInvalidDecryptTarget           = ecies.ErrInvalidTarget

	// ErrInvalidPrivateKey is returned for keys that are not 32 bytes of hex or out of range.
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrInvalidPublicKey is returned for keys that are not a curve point.
	ErrInvalidPublicKey = errors.New("invalid public key")
	// ErrInvalidDerivationPath is returned for unparsable BIP-32 paths.
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
)
