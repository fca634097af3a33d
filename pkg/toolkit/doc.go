// Package toolkit is the entry point of cryptokit: one stateless Service
// bundling hashing, HD accounts, message and transaction signatures, the two
// ciphers and the validity window check.
//
// Every primitive sits behind a small capability interface (Hasher,
// SignerFactory, KeyAgreement, SymmetricCipher, TransactionSigner) so a
// Service can be assembled from other implementations in tests. The zero
// ServiceConfig gives the Ethereum defaults:
//
//	svc, err := toolkit.NewService(toolkit.ServiceConfig{})
//	account, err := svc.GetCredentials()
//	sig, err := svc.Sign("hello", account.PrivateKey)
//	ok, err := svc.Verify("hello", sig, account.Address)
//
// A Service holds no per-call state and is safe for concurrent use.
//
// Messages passed to Sign and Verify are interpreted by type:
//   - sign.Digest is signed as is.
//   - string is stripped of a leading "0x"; if the rest is exactly 64 hex
//     characters it is taken as a digest, otherwise it is hashed.
//   - []byte and string-keyed maps are canonicalized and hashed.
package toolkit
