package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"time"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	cipherService "github.com/allisson/reptend/internal/cipher/service"
)

type kmsEncrypter interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
}

// RunCreateMasterKey generates a random 32-byte master key and prints the
// environment variables that load it.
//
// Without kmsProvider and kmsKeyURI the key is printed as plain base64, which is
// only suitable for development. With both set, the key is wrapped by the KMS key
// and MASTER_KEYS holds the KMS ciphertext. If keyID is empty, a default ID in the
// format "master-key-YYYY-MM-DD" is used. Key material is zeroed after encoding.
func RunCreateMasterKey(
	ctx context.Context,
	kmsService cipherService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	keyID, kmsProvider, kmsKeyURI string,
) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf("--kms-provider and --kms-key-uri are required together")
	}

	if keyID == "" {
		keyID = fmt.Sprintf("master-key-%s", time.Now().Format("2006-01-02"))
	}

	masterKey := make([]byte, cipherDomain.MasterKeySize)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer cipherDomain.Zero(masterKey)

	if kmsProvider == "" {
		logger.Warn("master key printed without KMS wrapping", slog.String("master_key_id", keyID))

		_, _ = fmt.Fprintln(writer, "# Master Key Configuration (plaintext, development only)")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "MASTER_KEYS=\"%s:%s\"\n", keyID, base64.StdEncoding.EncodeToString(masterKey))
		_, _ = fmt.Fprintf(writer, "ACTIVE_MASTER_KEY_ID=\"%s\"\n", keyID)
		return nil
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	encrypter, ok := keeper.(kmsEncrypter)
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	ciphertext, err := encrypter.Encrypt(ctx, masterKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}
	encodedKey := base64.StdEncoding.EncodeToString(ciphertext)

	logger.Info("master key created",
		slog.String("master_key_id", keyID),
		slog.String("kms_provider", kmsProvider),
	)

	_, _ = fmt.Fprintln(writer, "# Master Key Configuration (KMS Mode)")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "MASTER_KEYS=\"%s:%s\"\n", keyID, encodedKey)
	_, _ = fmt.Fprintf(writer, "ACTIVE_MASTER_KEY_ID=\"%s\"\n", keyID)
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "# Cipher keys stay bound to the master key they were created with.")
	_, _ = fmt.Fprintf(writer, "# To add a key later: MASTER_KEYS=\"%s:%s,new-key:<kms-ciphertext>\"\n", keyID, encodedKey)

	return nil
}
