package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens gocloud.dev/secrets keepers for the master key.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI.
	// Supports gcpkms://, awskms://, azurekeyvault://, hashivault:// and base64key://.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)

	// EncryptMasterKey encrypts a raw master key and returns the base64 ciphertext
	// expected in MASTER_KEY when KMS is configured.
	EncryptMasterKey(ctx context.Context, keyURI string, masterKey []byte) (string, error)
}

type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

func (k *kmsService) EncryptMasterKey(ctx context.Context, keyURI string, masterKey []byte) (string, error) {
	if len(masterKey) != cryptoDomain.KeySize {
		return "", cryptoDomain.ErrInvalidKeyLength
	}

	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = keeper.Close()
	}()

	ciphertext, err := keeper.Encrypt(ctx, masterKey)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
