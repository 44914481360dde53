// Package service provides the cryptographic services behind envelope encryption:
// the AES-256-GCM engine, the envelope protocol and access to KMS keepers.
package service

import (
	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
)

// AEAD is a cipher instance bound to a single key.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD under a fresh random nonce.
	Encrypt(plaintext, aad []byte) (cryptoDomain.AEADResult, error)

	// Decrypt verifies the tag and returns the plaintext. No plaintext is returned
	// when verification fails.
	Decrypt(result cryptoDomain.AEADResult, aad []byte) ([]byte, error)
}

// Engine is the stateless AES-256-GCM primitive used by the envelope protocol.
type Engine interface {
	// Encrypt encrypts plaintext under a 32-byte key.
	Encrypt(key, plaintext []byte) (cryptoDomain.AEADResult, error)

	// Decrypt authenticates and decrypts a ciphertext produced by Encrypt.
	Decrypt(key, nonce, ciphertext, tag []byte) ([]byte, error)

	// DecryptHex is Decrypt over hex-encoded nonce, ciphertext and tag.
	DecryptHex(key []byte, nonceHex, ciphertextHex, tagHex string) ([]byte, error)
}

// EnvelopeSealer seals and opens payloads with envelope encryption.
type EnvelopeSealer interface {
	// Seal encrypts payload and metadata under a fresh DEK and wraps the DEK with the master key.
	Seal(
		masterKey *cryptoDomain.MasterKey,
		payload []byte,
		metadata cryptoDomain.Metadata,
	) (cryptoDomain.Envelope, error)

	// Open unwraps the DEK and recovers the payload and metadata.
	Open(
		masterKey *cryptoDomain.MasterKey,
		envelope cryptoDomain.Envelope,
	) ([]byte, cryptoDomain.Metadata, error)
}
