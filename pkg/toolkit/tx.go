package toolkit

import (
	"github.com/erc7824/nitrolite/cryptokit/pkg/txsign"
)

// SignTx signs a legacy transaction with the hex private key. Chains missing
// from the profile table are still signed with EIP-155 replay protection
// under the default hardfork; chain id 0 is signed without it.
func (s *Service) SignTx(utx txsign.UnsignedTransaction, privateKeyHex string) (txsign.SignedTransaction, error) {
	signed, err := s.signTx(utx, privateKeyHex)
	s.observe("sign_tx", err)
	return signed, err
}

func (s *Service) signTx(utx txsign.UnsignedTransaction, privateKeyHex string) (txsign.SignedTransaction, error) {
	signer, err := s.newSigner(privateKeyHex)
	if err != nil {
		return txsign.SignedTransaction{}, err
	}
	signed, err := s.cfg.TxSigner.Sign(utx, signer)
	if err != nil {
		return txsign.SignedTransaction{}, err
	}

	chain, known := txsign.LookupChain(utx.ChainID)
	s.cfg.Metrics.ObserveTransaction(chain.Name, known)
	return signed, nil
}
