package service

import (
	"crypto/rand"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
	apperrors "github.com/allisson/txvault/internal/errors"
)

// AEADManagerService creates AEAD ciphers and implements Engine on top of them.
type AEADManagerService struct {
	rand io.Reader
}

// NewAEADManager creates a new AEADManagerService reading nonces from random.
// A nil reader selects crypto/rand.Reader.
func NewAEADManager(random io.Reader) *AEADManagerService {
	if random == nil {
		random = rand.Reader
	}
	return &AEADManagerService{rand: random}
}

// newCipher creates an AES-256-GCM cipher bound to key.
// Returns ErrInvalidKeyLength if key is not 32 bytes.
func (am *AEADManagerService) newCipher(key []byte) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			cryptoDomain.ErrInvalidKeyLength,
			cryptoDomain.KeySize,
			len(key),
		)
	}

	return NewAESGCM(key, am.rand)
}

// Encrypt encrypts plaintext under key with AES-256-GCM and no additional data.
func (am *AEADManagerService) Encrypt(key, plaintext []byte) (cryptoDomain.AEADResult, error) {
	c, err := am.newCipher(key)
	if err != nil {
		if apperrors.Is(err, cryptoDomain.ErrInvalidKeyLength) {
			return cryptoDomain.AEADResult{}, err
		}
		return cryptoDomain.AEADResult{}, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}
	return c.Encrypt(plaintext, nil)
}

// Decrypt validates key, nonce and tag lengths in that order and then
// authenticates and decrypts.
func (am *AEADManagerService) Decrypt(key, nonce, ciphertext, tag []byte) ([]byte, error) {
	c, err := am.newCipher(key)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(cryptoDomain.AEADResult{Nonce: nonce, Ciphertext: ciphertext, Tag: tag}, nil)
}

// DecryptHex decodes the lowercase hex fields and calls Decrypt. Malformed fields
// fail with ErrInvalidEncoding, ErrInvalidNonceLength or ErrInvalidTagLength before
// any decryption is attempted.
func (am *AEADManagerService) DecryptHex(key []byte, nonceHex, ciphertextHex, tagHex string) ([]byte, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			cryptoDomain.ErrInvalidKeyLength,
			cryptoDomain.KeySize,
			len(key),
		)
	}

	result, err := cryptoDomain.ParseAEADResult(nonceHex, ciphertextHex, tagHex)
	if err != nil {
		return nil, err
	}
	return am.Decrypt(key, result.Nonce, result.Ciphertext, result.Tag)
}
