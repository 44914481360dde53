package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
)

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

// shortReader returns fewer bytes than requested and then EOF.
type shortReader struct{ n int }

func (r *shortReader) Read(p []byte) (int, error) {
	if r.n <= 0 {
		return 0, errors.New("eof")
	}
	n := min(r.n, len(p))
	r.n -= n
	return n, nil
}

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestAEADManagerService_NewCipher(t *testing.T) {
	manager := NewAEADManager(nil)

	t.Run("create AES-GCM cipher", func(t *testing.T) {
		c, err := manager.newCipher(randomKey(t))
		require.NoError(t, err)

		_, ok := c.(*AESGCMCipher)
		assert.True(t, ok, "cipher should be of type *AESGCMCipher")
	})

	for _, size := range []int{0, 16, 24, 31, 33} {
		t.Run("invalid key size", func(t *testing.T) {
			_, err := manager.newCipher(make([]byte, size))
			assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyLength)
		})
	}
}

func TestAEADManagerService_EncryptDecrypt(t *testing.T) {
	manager := NewAEADManager(nil)
	key := randomKey(t)

	t.Run("round trip", func(t *testing.T) {
		plaintext := []byte(`{"amount":100}`)

		result, err := manager.Encrypt(key, plaintext)
		require.NoError(t, err)
		assert.Len(t, result.Nonce, cryptoDomain.NonceSize)
		assert.Len(t, result.Tag, cryptoDomain.TagSize)
		assert.Len(t, result.Ciphertext, len(plaintext))
		assert.Equal(t, strings.ToLower(result.TagHex()), result.TagHex())

		decrypted, err := manager.Decrypt(key, result.Nonce, result.Ciphertext, result.Tag)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("empty plaintext", func(t *testing.T) {
		result, err := manager.Encrypt(key, []byte{})
		require.NoError(t, err)
		assert.Empty(t, result.Ciphertext)

		decrypted, err := manager.Decrypt(key, result.Nonce, result.Ciphertext, result.Tag)
		require.NoError(t, err)
		assert.Empty(t, decrypted)
	})

	t.Run("fresh nonce per call", func(t *testing.T) {
		a, err := manager.Encrypt(key, []byte("same"))
		require.NoError(t, err)
		b, err := manager.Encrypt(key, []byte("same"))
		require.NoError(t, err)
		assert.NotEqual(t, a.Nonce, b.Nonce)
		assert.NotEqual(t, a.Ciphertext, b.Ciphertext)
	})

	t.Run("wrong key fails authentication", func(t *testing.T) {
		result, err := manager.Encrypt(key, []byte("secret"))
		require.NoError(t, err)

		decrypted, err := manager.Decrypt(randomKey(t), result.Nonce, result.Ciphertext, result.Tag)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
		assert.Nil(t, decrypted)
	})

	t.Run("length checks in order", func(t *testing.T) {
		nonce := make([]byte, cryptoDomain.NonceSize)
		tag := make([]byte, cryptoDomain.TagSize)

		_, err := manager.Decrypt(make([]byte, 16), nil, nil, nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyLength)

		_, err = manager.Decrypt(key, make([]byte, 8), nil, nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidNonceLength)

		_, err = manager.Decrypt(key, nonce, nil, make([]byte, 12))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidTagLength)

		_, err = manager.Decrypt(key, nonce, []byte("x"), tag)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("encrypt rejects bad key", func(t *testing.T) {
		_, err := manager.Encrypt(make([]byte, 31), []byte("x"))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyLength)
	})
}

func TestAEADManagerService_DecryptHex(t *testing.T) {
	manager := NewAEADManager(nil)
	key := randomKey(t)

	result, err := manager.Encrypt(key, []byte("hello"))
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		plaintext, err := manager.DecryptHex(key, result.NonceHex(), result.CiphertextHex(), result.TagHex())
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), plaintext)
	})

	t.Run("non hex field", func(t *testing.T) {
		_, err := manager.DecryptHex(key, result.NonceHex(), "not-hex!", result.TagHex())
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidEncoding)
	})

	t.Run("key checked first", func(t *testing.T) {
		_, err := manager.DecryptHex(make([]byte, 16), "zz", "zz", "zz")
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyLength)
	})

	t.Run("zero tag", func(t *testing.T) {
		zeroTag := hex.EncodeToString(make([]byte, cryptoDomain.TagSize))
		_, err := manager.DecryptHex(key, result.NonceHex(), result.CiphertextHex(), zeroTag)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})
}

func TestAEADManagerService_RandomSourceFailure(t *testing.T) {
	t.Run("failing reader", func(t *testing.T) {
		manager := NewAEADManager(failingReader{})
		_, err := manager.Encrypt(make([]byte, cryptoDomain.KeySize), []byte("x"))
		assert.ErrorIs(t, err, cryptoDomain.ErrEncryptionFailed)
	})

	t.Run("short read", func(t *testing.T) {
		manager := NewAEADManager(&shortReader{n: 5})
		_, err := manager.Encrypt(make([]byte, cryptoDomain.KeySize), []byte("x"))
		assert.ErrorIs(t, err, cryptoDomain.ErrEncryptionFailed)
	})
}
