package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// The cipher uses a 12-byte random nonce per encryption and a 16-byte tag, which
// is returned separately from the ciphertext so both can be stored as their own
// hex fields. The instance is stateless apart from its key and is safe for
// concurrent use as long as the random source is.
type AESGCMCipher struct {
	aead cipher.AEAD
	rand io.Reader
}

// NewAESGCM creates a new AES-256-GCM cipher. The key must be exactly 32 bytes.
// Nonces are read from random, which should be crypto/rand.Reader outside tests.
func NewAESGCM(key []byte, random io.Reader) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			cryptoDomain.ErrInvalidKeyLength,
			cryptoDomain.KeySize,
			len(key),
		)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.NonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead, rand: random}, nil
}

// Encrypt encrypts plaintext with optional additional authenticated data.
// A short read from the random source fails the call with ErrEncryptionFailed.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (cryptoDomain.AEADResult, error) {
	nonce := make([]byte, cryptoDomain.NonceSize)
	if _, err := io.ReadFull(a.rand, nonce); err != nil {
		return cryptoDomain.AEADResult{}, fmt.Errorf(
			"%w: failed to generate nonce: %v",
			cryptoDomain.ErrEncryptionFailed,
			err,
		)
	}

	sealed := a.aead.Seal(nil, nonce, plaintext, aad)
	split := len(sealed) - cryptoDomain.TagSize

	return cryptoDomain.AEADResult{
		Nonce:      nonce,
		Ciphertext: sealed[:split:split],
		Tag:        sealed[split:],
	}, nil
}

// Decrypt checks nonce and tag lengths, then verifies the tag before returning
// any plaintext.
func (a *AESGCMCipher) Decrypt(result cryptoDomain.AEADResult, aad []byte) ([]byte, error) {
	if err := result.Validate(); err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(result.Ciphertext)+len(result.Tag))
	sealed = append(sealed, result.Ciphertext...)
	sealed = append(sealed, result.Tag...)

	plaintext, err := a.aead.Open(nil, result.Nonce, sealed, aad)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}
	return plaintext, nil
}
