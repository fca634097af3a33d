package toolkit

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/erc7824/nitrolite/cryptokit/pkg/sign"
)

// Sign signs msg with the hex private key and returns {r, s, v} with v in {27, 28}.
// See the package documentation for how msg is turned into a digest.
func (s *Service) Sign(msg any, privateKeyHex string) (sign.Components, error) {
	sig, err := s.sign(msg, privateKeyHex)
	s.observe("sign", err)
	if err != nil {
		return sign.Components{}, err
	}
	return sig.Components(), nil
}

func (s *Service) sign(msg any, privateKeyHex string) (sign.Signature, error) {
	digest, err := s.messageDigest(msg)
	if err != nil {
		return nil, err
	}
	signer, err := s.newSigner(privateKeyHex)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	return sig, nil
}

// Verify reports whether sig over msg was made by publicKeyOrAddress, which is
// either a public key (64 bytes, or 65 with the 0x04 prefix) or an address, in
// hex with or without 0x and in any case.
//
// A signature that is well-formed but does not match returns false with a nil
// error. Malformed r, s or v return ErrMalformedSignature.
func (s *Service) Verify(msg any, sig sign.Components, publicKeyOrAddress string) (bool, error) {
	ok, err := s.verify(msg, sig, publicKeyOrAddress)
	s.observe("verify", err)
	if err == nil {
		s.cfg.Metrics.ObserveVerification(ok)
	}
	return ok, err
}

func (s *Service) verify(msg any, components sign.Components, publicKeyOrAddress string) (bool, error) {
	digest, err := s.messageDigest(msg)
	if err != nil {
		return false, err
	}
	sig, err := components.Signature()
	if err != nil {
		return false, err
	}
	if err := sig.Validate(); err != nil {
		return false, err
	}
	r, sv := new(big.Int).SetBytes(sig.R()), new(big.Int).SetBytes(sig.S())
	if !ethcrypto.ValidateSignatureValues(sig.RecoveryID(), r, sv, false) {
		return false, fmt.Errorf("%w: r or s out of range", ErrMalformedSignature)
	}

	pub, err := s.cfg.Recoverer.RecoverPublicKey(digest.Bytes(), sig)
	if err != nil {
		s.cfg.Logger.Debug("signature recovery failed", "digest", digest.String(), "error", err)
		return false, nil
	}

	want := strings.ToLower(trimHexPrefix(publicKeyOrAddress))
	pubBytes := pub.Bytes()
	candidates := []string{
		hex.EncodeToString(pubBytes),
		strings.ToLower(trimHexPrefix(pub.Address().String())),
	}
	if len(pubBytes) == 65 {
		candidates = append(candidates, hex.EncodeToString(pubBytes[1:]))
	}
	for _, candidate := range candidates {
		if candidate == want {
			return true, nil
		}
	}

	s.cfg.Logger.Debug("signature does not match", "digest", digest.String(), "recovered", pub.Address().String())
	return false, nil
}
