package sign

import (
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var _ Signer = (*MockSigner)(nil)

// MockSigner is a mock implementation of the Signer interface for testing purposes.
// Its signatures are well-formed 65-byte values derived from the digest and the
// signer id, so they are predictable but do not recover to any key.
type MockSigner struct {
	publicKey PublicKey
}

// NewMockSigner creates a new MockSigner with the given ID.
// The ID is used to create the underlying mock public key.
func NewMockSigner(id string) *MockSigner {
	return &MockSigner{publicKey: NewMockPublicKey(id)}
}

// Sign returns keccak(hash‖id) ‖ keccak(id‖hash) ‖ 27.
func (m *MockSigner) Sign(hash []byte) (Signature, error) {
	id := m.publicKey.Bytes()
	sig := make(Signature, 0, SignatureLength)
	sig = append(sig, ethcrypto.Keccak256(hash, id)...)
	sig = append(sig, ethcrypto.Keccak256(id, hash)...)
	sig = append(sig, RecoveryIDOffset)
	return sig, nil
}

// PublicKey returns the mock public key associated with this signer.
func (m *MockSigner) PublicKey() PublicKey {
	return m.publicKey
}

var _ PublicKey = (*MockPublicKey)(nil)

// MockPublicKey is a mock implementation of the PublicKey interface for testing.
// It stores an ID string that is used as both the key data and address.
type MockPublicKey struct {
	id string
}

// NewMockPublicKey creates a new MockPublicKey with the given ID.
func NewMockPublicKey(id string) *MockPublicKey {
	return &MockPublicKey{id: id}
}

// Address returns a mock address based on the public key's ID.
func (m *MockPublicKey) Address() Address {
	return NewMockAddress(m.id)
}

// Bytes returns the ID as a byte slice.
func (m *MockPublicKey) Bytes() []byte {
	return []byte(m.id)
}

var _ Address = (*MockAddress)(nil)

// MockAddress is a mock implementation of the Address interface for testing.
type MockAddress struct {
	id string
}

// NewMockAddress creates a new MockAddress with the given ID.
func NewMockAddress(id string) *MockAddress {
	return &MockAddress{id: id}
}

// String returns the ID as the string representation of the address.
func (m *MockAddress) String() string {
	return m.id
}

// Equals compares this address with another by comparing their string representations.
func (m *MockAddress) Equals(other Address) bool {
	return m.id == other.String()
}

var _ PublicKeyRecoverer = MockRecoverer{}

// MockRecoverer returns a fixed public key for every signature.
type MockRecoverer struct {
	Key PublicKey
}

func (r MockRecoverer) RecoverPublicKey(hash []byte, signature Signature) (PublicKey, error) {
	return r.Key, nil
}
