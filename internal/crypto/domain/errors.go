package domain

import (
	"github.com/allisson/txvault/internal/errors"
)

// AEAD engine errors.
var (
	// ErrInvalidKeyLength indicates a master key or DEK that is not exactly 32 bytes.
	// Keys are never truncated or padded.
	ErrInvalidKeyLength = errors.Wrap(errors.ErrInvalidInput, "invalid key length")

	// ErrInvalidNonceLength indicates a nonce that is not exactly 12 bytes.
	ErrInvalidNonceLength = errors.Wrap(errors.ErrInvalidInput, "invalid nonce length")

	// ErrInvalidTagLength indicates an authentication tag that is not exactly 16 bytes.
	ErrInvalidTagLength = errors.Wrap(errors.ErrInvalidInput, "invalid tag length")

	// ErrInvalidEncoding indicates a hex-encoded field containing non-hexadecimal text.
	ErrInvalidEncoding = errors.Wrap(errors.ErrInvalidInput, "invalid hex encoding")

	// ErrAuthenticationFailed indicates the tag did not verify for the given key,
	// nonce and ciphertext. No plaintext is ever returned alongside it.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrIntegrity, "authentication failed")

	// ErrEncryptionFailed indicates the cipher or the random source failed while sealing.
	// Callers must not persist anything produced by the failed call.
	ErrEncryptionFailed = errors.New("encryption failed")
)

// Envelope protocol errors.
var (
	// ErrDecryptionFailed is the only error callers see when either decrypt layer of
	// an envelope fails. The message is identical for both layers.
	ErrDecryptionFailed = errors.New("decryption failed (possible tampering)")

	// ErrCorruptedEnvelope indicates stored envelope fields with bad encoding or
	// lengths. The underlying engine error stays in the chain.
	ErrCorruptedEnvelope = errors.Wrap(errors.ErrIntegrity, "corrupted envelope")

	// ErrUnwrapFailed marks a failure to unwrap the DEK with the master key.
	ErrUnwrapFailed = errors.New("dek unwrap failed")

	// ErrPayloadDecryptionFailed marks a failure to decrypt the payload with the DEK.
	ErrPayloadDecryptionFailed = errors.New("payload decryption failed")

	// ErrDeserialization indicates authenticated plaintext that does not parse into
	// payload and metadata. This is an encoding bug, not tampering.
	ErrDeserialization = errors.New("envelope plaintext deserialization failed")

	// ErrInvalidPayload indicates a payload that is not valid JSON.
	ErrInvalidPayload = errors.Wrap(errors.ErrInvalidInput, "payload must be valid JSON")

	// ErrInvalidMetadata indicates metadata using the reserved payload key.
	ErrInvalidMetadata = errors.Wrap(errors.ErrInvalidInput, "invalid metadata")
)

// Master key loading errors. All of them prevent the process from starting.
var (
	// ErrMasterKeyNotSet indicates MASTER_KEY is empty.
	ErrMasterKeyNotSet = errors.New("MASTER_KEY not set")

	// ErrInvalidMasterKeyEncoding indicates MASTER_KEY is not valid hex (or base64 in KMS mode).
	ErrInvalidMasterKeyEncoding = errors.New("invalid master key encoding")

	// ErrKMSConfigIncomplete indicates only one of KMS_PROVIDER and KMS_KEY_URI is set.
	ErrKMSConfigIncomplete = errors.New("KMS_PROVIDER and KMS_KEY_URI must be set together")

	// ErrKMSDecryptFailed indicates the KMS keeper could not decrypt the master key.
	ErrKMSDecryptFailed = errors.New("failed to decrypt master key with KMS")
)

// DecryptionError is returned by envelope opening. Its message never reveals
// which layer failed; the layer is only observable in-process through errors.Is.
type DecryptionError struct {
	stage error
	cause error
}

// NewDecryptionError builds the uniform tamper error for the given stage.
func NewDecryptionError(stage, cause error) error {
	return &DecryptionError{stage: stage, cause: cause}
}

// Error implements error.
func (e *DecryptionError) Error() string {
	return ErrDecryptionFailed.Error()
}

// Unwrap exposes ErrDecryptionFailed, the integrity category and the stage marker.
func (e *DecryptionError) Unwrap() []error {
	return []error{ErrDecryptionFailed, errors.ErrIntegrity, e.stage}
}

// Cause returns the underlying engine error. It must not be written to responses or logs.
func (e *DecryptionError) Cause() error {
	return e.cause
}
