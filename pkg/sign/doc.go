// Package sign provides the secp256k1 signature engine of the toolkit.
//
// It defines small interfaces for signing and recovery so that callers can
// swap the primitive implementation (HSM, KMS, a mock in tests) while the
// canonicalization and encoding logic stays the same:
//
//   - Signer: signs 32-byte digests
//   - PublicKey / Address: identity derived from a key
//   - PublicKeyRecoverer: recovery from (digest, signature)
//
// Signatures are deterministic (RFC 6979 nonces, provided by go-ethereum),
// so signing the same digest with the same key always yields the same bytes.
//
// # Wire form
//
// A Signature is the 65-byte r‖s‖v form with v in {27, 28}. At the boundary
// it is exchanged as Components, {r, s, v} with r and s as 0x-prefixed
// 32-byte hex and v as an integer. Components also decode from the compact
// signature hex string:
//
//	signer, err := sign.NewEthereumSigner(privateKeyHex)
//	if err != nil {
//	    return err
//	}
//	sig, err := signer.Sign(ethcrypto.Keccak256([]byte("hello world")))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sig.Components().R)
package sign
