package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
	apperrors "github.com/allisson/txvault/internal/errors"
)

// EnvelopeService implements EnvelopeSealer.
//
// Every Seal draws a fresh 32-byte DEK, encrypts the canonical plaintext with it
// and encrypts the hex encoding of the DEK with the master key. The DEK only lives
// for the duration of one call and is zeroed before returning. Go cannot guarantee
// that no copy survives elsewhere in memory (the GC may move or retain buffers), so
// zeroing is best effort.
type EnvelopeService struct {
	engine Engine
	rand   io.Reader
}

// NewEnvelopeService creates an EnvelopeService. A nil reader selects crypto/rand.Reader.
func NewEnvelopeService(engine Engine, random io.Reader) *EnvelopeService {
	if random == nil {
		random = rand.Reader
	}
	return &EnvelopeService{engine: engine, rand: random}
}

// Seal encrypts payload (a JSON document) bound to metadata.
func (s *EnvelopeService) Seal(
	masterKey *cryptoDomain.MasterKey,
	payload []byte,
	metadata cryptoDomain.Metadata,
) (cryptoDomain.Envelope, error) {
	if err := validateMasterKey(masterKey); err != nil {
		return cryptoDomain.Envelope{}, err
	}

	plaintext, err := cryptoDomain.EncodePlaintext(payload, metadata)
	if err != nil {
		return cryptoDomain.Envelope{}, err
	}
	defer cryptoDomain.Zero(plaintext)

	dek := make([]byte, cryptoDomain.KeySize)
	defer cryptoDomain.Zero(dek)
	if _, err := io.ReadFull(s.rand, dek); err != nil {
		return cryptoDomain.Envelope{}, fmt.Errorf("%w: failed to generate dek: %v", cryptoDomain.ErrEncryptionFailed, err)
	}

	payloadResult, err := s.engine.Encrypt(dek, plaintext)
	if err != nil {
		return cryptoDomain.Envelope{}, asEncryptionFailure(err)
	}

	dekHex := make([]byte, hex.EncodedLen(len(dek)))
	defer cryptoDomain.Zero(dekHex)
	hex.Encode(dekHex, dek)

	wrapResult, err := s.engine.Encrypt(masterKey.Key, dekHex)
	if err != nil {
		return cryptoDomain.Envelope{}, asEncryptionFailure(err)
	}

	return cryptoDomain.NewEnvelope(payloadResult, wrapResult, masterKey.Version), nil
}

// Open unwraps the DEK, decrypts the payload and splits it from its metadata.
//
// Failures of either decrypt layer return a *DecryptionError whose message is the
// same for both. Malformed stored fields return ErrCorruptedEnvelope. Plaintext that
// authenticates but does not parse returns ErrDeserialization.
func (s *EnvelopeService) Open(
	masterKey *cryptoDomain.MasterKey,
	envelope cryptoDomain.Envelope,
) ([]byte, cryptoDomain.Metadata, error) {
	if err := validateMasterKey(masterKey); err != nil {
		return nil, nil, err
	}

	dekHex, err := s.openLayer(
		masterKey.Key,
		envelope.DekWrapNonce,
		envelope.DekWrapped,
		envelope.DekWrapTag,
		cryptoDomain.ErrUnwrapFailed,
	)
	if err != nil {
		return nil, nil, err
	}

	dek := make([]byte, cryptoDomain.KeySize)
	defer cryptoDomain.Zero(dekHex, dek)
	if hex.DecodedLen(len(dekHex)) != cryptoDomain.KeySize {
		return nil, nil, fmt.Errorf("%w: unwrapped dek has wrong size", cryptoDomain.ErrDeserialization)
	}
	if _, err := hex.Decode(dek, dekHex); err != nil {
		return nil, nil, fmt.Errorf("%w: unwrapped dek is not hex", cryptoDomain.ErrDeserialization)
	}

	plaintext, err := s.openLayer(
		dek,
		envelope.PayloadNonce,
		envelope.PayloadCiphertext,
		envelope.PayloadTag,
		cryptoDomain.ErrPayloadDecryptionFailed,
	)
	if err != nil {
		return nil, nil, err
	}
	defer cryptoDomain.Zero(plaintext)

	return cryptoDomain.DecodePlaintext(plaintext)
}

// openLayer decrypts one hex-encoded layer. An authentication failure becomes a
// *DecryptionError tagged with stage; anything else means the stored fields are
// malformed.
func (s *EnvelopeService) openLayer(key []byte, nonceHex, ciphertextHex, tagHex string, stage error) ([]byte, error) {
	plaintext, err := s.engine.DecryptHex(key, nonceHex, ciphertextHex, tagHex)
	if err == nil {
		return plaintext, nil
	}
	if apperrors.Is(err, cryptoDomain.ErrAuthenticationFailed) {
		return nil, cryptoDomain.NewDecryptionError(stage, err)
	}
	return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrCorruptedEnvelope, err)
}

func validateMasterKey(masterKey *cryptoDomain.MasterKey) error {
	if masterKey == nil || len(masterKey.Key) != cryptoDomain.KeySize {
		size := 0
		if masterKey != nil {
			size = len(masterKey.Key)
		}
		return fmt.Errorf(
			"%w: master key must be %d bytes, got %d",
			cryptoDomain.ErrInvalidKeyLength,
			cryptoDomain.KeySize,
			size,
		)
	}
	return nil
}

func asEncryptionFailure(err error) error {
	if apperrors.Is(err, cryptoDomain.ErrEncryptionFailed) {
		return err
	}
	return fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
}
