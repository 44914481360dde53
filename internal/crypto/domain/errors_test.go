package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/txvault/internal/errors"
)

func TestDecryptionError(t *testing.T) {
	cause := errors.New("cipher: message authentication failed")

	unwrapErr := NewDecryptionError(ErrUnwrapFailed, cause)
	payloadErr := NewDecryptionError(ErrPayloadDecryptionFailed, cause)

	t.Run("message does not reveal the stage", func(t *testing.T) {
		assert.Equal(t, "decryption failed (possible tampering)", unwrapErr.Error())
		assert.Equal(t, unwrapErr.Error(), payloadErr.Error())
	})

	t.Run("stage observable in process", func(t *testing.T) {
		assert.ErrorIs(t, unwrapErr, ErrUnwrapFailed)
		assert.NotErrorIs(t, unwrapErr, ErrPayloadDecryptionFailed)
		assert.ErrorIs(t, payloadErr, ErrPayloadDecryptionFailed)
		assert.NotErrorIs(t, payloadErr, ErrUnwrapFailed)
	})

	t.Run("maps to integrity", func(t *testing.T) {
		assert.ErrorIs(t, unwrapErr, ErrDecryptionFailed)
		assert.ErrorIs(t, payloadErr, apperrors.ErrIntegrity)
	})

	t.Run("cause", func(t *testing.T) {
		var de *DecryptionError
		assert.True(t, errors.As(payloadErr, &de))
		assert.Equal(t, cause, de.Cause())
		assert.NotErrorIs(t, payloadErr, cause)
	})
}

func TestErrorCategories(t *testing.T) {
	for _, err := range []error{ErrInvalidKeyLength, ErrInvalidNonceLength, ErrInvalidTagLength, ErrInvalidEncoding} {
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	}
	assert.ErrorIs(t, ErrAuthenticationFailed, apperrors.ErrIntegrity)
	assert.NotErrorIs(t, ErrEncryptionFailed, apperrors.ErrIntegrity)
	assert.NotErrorIs(t, ErrDeserialization, apperrors.ErrIntegrity)
}
