package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	"github.com/allisson/reptend/internal/cipher/http/dto"
	cipherUseCase "github.com/allisson/reptend/internal/cipher/usecase"
)

// RunCreateCipherKey creates version 1 of a named cipher key. primeBits of 0 selects
// CIPHER_DEFAULT_PRIME_BITS.
//
// Requirements: Database must be migrated, MASTER_KEYS and ACTIVE_MASTER_KEY_ID must be set.
func RunCreateCipherKey(
	ctx context.Context,
	cipherKeyUseCase cipherUseCase.CipherKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	primeBits int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("creating cipher key", slog.String("name", name), slog.Int("prime_bits", primeBits))

	cipherKey, err := cipherKeyUseCase.Create(ctx, name, primeBits)
	if err != nil {
		return fmt.Errorf("failed to create cipher key: %w", err)
	}

	logger.Info("cipher key created",
		slog.String("id", cipherKey.ID.String()),
		slog.String("name", cipherKey.Name),
		slog.Int("prime_bits", cipherKey.PrimeBits()),
	)

	return writeCipherKey(writer, cipherKey, format)
}

// RunRotateCipherKey adds a new version to an existing cipher key. Older versions
// remain usable for decryption.
func RunRotateCipherKey(
	ctx context.Context,
	cipherKeyUseCase cipherUseCase.CipherKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	primeBits int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("rotating cipher key", slog.String("name", name), slog.Int("prime_bits", primeBits))

	cipherKey, err := cipherKeyUseCase.Rotate(ctx, name, primeBits)
	if err != nil {
		return fmt.Errorf("failed to rotate cipher key: %w", err)
	}

	logger.Info("cipher key rotated",
		slog.String("id", cipherKey.ID.String()),
		slog.String("name", cipherKey.Name),
		slog.Uint64("version", uint64(cipherKey.Version)),
	)

	return writeCipherKey(writer, cipherKey, format)
}

func writeCipherKey(writer io.Writer, cipherKey *cipherDomain.CipherKey, format string) error {
	if format == "json" {
		return writeJSON(writer, dto.MapCipherKeyToResponse(cipherKey))
	}

	_, _ = fmt.Fprintln(writer, "Cipher key ready")
	_, _ = fmt.Fprintf(writer, "ID:            %s\n", cipherKey.ID)
	_, _ = fmt.Fprintf(writer, "Name:          %s\n", cipherKey.Name)
	_, _ = fmt.Fprintf(writer, "Version:       %d\n", cipherKey.Version)
	_, _ = fmt.Fprintf(writer, "Prime bits:    %d\n", cipherKey.PrimeBits())
	_, _ = fmt.Fprintf(writer, "Master key ID: %s\n", cipherKey.MasterKeyID)
	return nil
}
