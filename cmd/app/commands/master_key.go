package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
	cryptoService "github.com/allisson/txvault/internal/crypto/service"
)

// RunCreateMasterKey generates a 32-byte master key and prints the environment
// variables that load it.
//
// Without KMS flags the key is printed as MASTER_KEY in hex. With both kmsProvider and
// kmsKeyURI the key is encrypted by the KMS and MASTER_KEY holds the base64 ciphertext.
// The raw key is zeroed before returning.
func RunCreateMasterKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	random io.Reader,
	logger *slog.Logger,
	writer io.Writer,
	version uint,
	kmsProvider, kmsKeyURI string,
) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf(
			"--kms-provider and --kms-key-uri must be set together\n\n" +
				"For local development, use:\n" +
				"  --kms-provider=localsecrets --kms-key-uri=\"base64key://<32-byte-base64-key>\"",
		)
	}
	if version == 0 {
		version = cryptoDomain.DefaultMasterKeyVersion
	}
	if random == nil {
		random = rand.Reader
	}

	masterKey := make([]byte, cryptoDomain.KeySize)
	defer cryptoDomain.Zero(masterKey)

	if _, err := io.ReadFull(random, masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}

	if kmsProvider == "" {
		logger.Warn("master key printed in plaintext, prefer a KMS provider outside development")

		_, _ = fmt.Fprintln(writer, "# Master Key Configuration")
		_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "MASTER_KEY=\"%s\"\n", hex.EncodeToString(masterKey))
		_, _ = fmt.Fprintf(writer, "MASTER_KEY_VERSION=\"%d\"\n", version)
		return nil
	}

	encoded, err := kmsService.EncryptMasterKey(ctx, kmsKeyURI, masterKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}

	logger.Info("master key encrypted with KMS", slog.String("kms_provider", kmsProvider))

	_, _ = fmt.Fprintln(writer, "# Master Key Configuration (KMS Mode)")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "MASTER_KEY=\"%s\"\n", encoded)
	_, _ = fmt.Fprintf(writer, "MASTER_KEY_VERSION=\"%d\"\n", version)
	return nil
}
