package domain

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/allisson/txvault/internal/config"
)

// MasterKey is the long-lived key that wraps every per-record DEK.
//
// A MasterKey is loaded once at startup and never changes afterwards; it is safe
// to share between goroutines as long as Close is only called at shutdown.
type MasterKey struct {
	Version uint
	Key     []byte
}

// NewMasterKey copies key into a new MasterKey. The key must be exactly 32 bytes.
func NewMasterKey(version uint, key []byte) (*MasterKey, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", ErrInvalidKeyLength, KeySize, len(key))
	}
	if version == 0 {
		version = DefaultMasterKeyVersion
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &MasterKey{Version: version, Key: k}, nil
}

// Close zeroes the key material.
func (m *MasterKey) Close() {
	if m == nil {
		return
	}
	Zero(m.Key)
}

// KMSKeeper is the subset of a gocloud.dev/secrets.Keeper used for master key handling.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for a KMS key URI.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

// LoadMasterKey loads the master key described by cfg and refuses to return a key
// that is not exactly 32 bytes.
//
// Without KMS settings MASTER_KEY is the hex encoding of the key. When KMS_PROVIDER
// and KMS_KEY_URI are set, MASTER_KEY is the base64 ciphertext produced by the
// create-master-key command and is decrypted through the keeper for KMS_KEY_URI.
// Decoded key bytes are zeroed before returning.
func LoadMasterKey(
	ctx context.Context,
	cfg *config.Config,
	kmsService KMSService,
	logger *slog.Logger,
) (*MasterKey, error) {
	if cfg.MasterKey == "" {
		return nil, ErrMasterKeyNotSet
	}

	if !cfg.UsesKMS() {
		key, err := hex.DecodeString(cfg.MasterKey)
		if err != nil {
			return nil, fmt.Errorf("%w: expected hex", ErrInvalidMasterKeyEncoding)
		}
		defer Zero(key)

		masterKey, err := NewMasterKey(cfg.MasterKeyVersion, key)
		if err != nil {
			return nil, err
		}
		logger.Info("master key loaded", slog.String("source", "env"), slog.Uint64("version", uint64(masterKey.Version)))
		return masterKey, nil
	}

	if cfg.KMSProvider == "" || cfg.KMSKeyURI == "" {
		return nil, ErrKMSConfigIncomplete
	}

	ciphertext, err := base64.StdEncoding.DecodeString(cfg.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("%w: expected base64 KMS ciphertext", ErrInvalidMasterKeyEncoding)
	}

	keeper, err := kmsService.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	key, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKMSDecryptFailed, err)
	}
	defer Zero(key)

	masterKey, err := NewMasterKey(cfg.MasterKeyVersion, key)
	if err != nil {
		return nil, err
	}
	logger.Info(
		"master key loaded",
		slog.String("source", "kms"),
		slog.String("kms_provider", cfg.KMSProvider),
		slog.Uint64("version", uint64(masterKey.Version)),
	)
	return masterKey, nil
}
