package commands

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	cipherService "github.com/allisson/reptend/internal/cipher/service"
	cipherUseCase "github.com/allisson/reptend/internal/cipher/usecase"
)

// stdioPath selects stdin or stdout in place of a file path.
const stdioPath = "-"

// FileKey selects the key material for encrypt-file and decrypt-file. Exactly one
// of Key and Passphrase must be set.
type FileKey struct {
	// Key is a base64 encoded 32-byte master key.
	Key string
	// Passphrase is stretched with Argon2id. The random Argon2 salt is stored in
	// front of the payload.
	Passphrase string
	// Prime is a decimal full reptend prime. When empty the default prime is used
	// and embedded in the payload; otherwise the same prime is needed to decrypt.
	Prime string
}

// RunEncryptFile encrypts inPath into outPath. Either path may be "-" for the
// standard streams. The output file is only created once encryption succeeded.
func RunEncryptFile(
	ctx context.Context,
	envelope *cipherService.Envelope,
	primeUseCase cipherUseCase.PrimeUseCase,
	logger *slog.Logger,
	stdio IOTuple,
	inPath, outPath string,
	key FileKey,
) error {
	if err := key.validate(); err != nil {
		return err
	}

	prime, err := key.prime()
	if err != nil {
		return err
	}
	if prime != nil {
		ok, err := primeUseCase.Check(ctx, prime)
		if err != nil {
			return fmt.Errorf("failed to check prime: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: 10 is not a primitive root modulo the given prime", cipherDomain.ErrInvalidPrime)
		}
	}

	plaintext, err := readInput(stdio, inPath)
	if err != nil {
		return err
	}
	defer cipherDomain.Zero(plaintext)

	var sealed []byte
	if key.Passphrase != "" {
		sealed, err = envelope.SealWithPassphrase(plaintext, []byte(key.Passphrase), prime)
	} else {
		var masterKey []byte
		masterKey, err = key.masterKey()
		if err != nil {
			return err
		}
		defer cipherDomain.Zero(masterKey)
		sealed, err = envelope.Encrypt(plaintext, masterKey, prime)
	}
	if err != nil {
		return fmt.Errorf("failed to encrypt file: %w", err)
	}

	if err := writeOutput(stdio, outPath, sealed); err != nil {
		return err
	}

	logger.Info("file encrypted",
		slog.String("input", inPath),
		slog.String("output", outPath),
		slog.Int("plaintext_bytes", len(plaintext)),
		slog.Int("ciphertext_bytes", len(sealed)),
		slog.Bool("embedded_prime", prime == nil),
	)
	return nil
}

// RunDecryptFile reverses RunEncryptFile. Nothing is written when authentication fails.
func RunDecryptFile(
	envelope *cipherService.Envelope,
	logger *slog.Logger,
	stdio IOTuple,
	inPath, outPath string,
	key FileKey,
) error {
	if err := key.validate(); err != nil {
		return err
	}

	prime, err := key.prime()
	if err != nil {
		return err
	}

	sealed, err := readInput(stdio, inPath)
	if err != nil {
		return err
	}

	var plaintext []byte
	if key.Passphrase != "" {
		plaintext, err = envelope.OpenWithPassphrase(sealed, []byte(key.Passphrase), prime)
	} else {
		var masterKey []byte
		masterKey, err = key.masterKey()
		if err != nil {
			return err
		}
		defer cipherDomain.Zero(masterKey)
		plaintext, err = envelope.Decrypt(sealed, masterKey, prime)
	}
	if err != nil {
		return fmt.Errorf("failed to decrypt file: %w", err)
	}
	defer cipherDomain.Zero(plaintext)

	if err := writeOutput(stdio, outPath, plaintext); err != nil {
		return err
	}

	logger.Info("file decrypted",
		slog.String("input", inPath),
		slog.String("output", outPath),
		slog.Int("plaintext_bytes", len(plaintext)),
	)
	return nil
}

func (k FileKey) validate() error {
	switch {
	case k.Key == "" && k.Passphrase == "":
		return errors.New("one of --key or --passphrase is required")
	case k.Key != "" && k.Passphrase != "":
		return errors.New("--key and --passphrase are mutually exclusive")
	}
	return nil
}

func (k FileKey) prime() (*big.Int, error) {
	if k.Prime == "" {
		return nil, nil
	}
	return parsePrime(k.Prime)
}

func (k FileKey) masterKey() ([]byte, error) {
	masterKey, err := base64.StdEncoding.DecodeString(k.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cipherDomain.ErrInvalidMasterKeyBase64, err)
	}
	if len(masterKey) != cipherDomain.MasterKeySize {
		cipherDomain.Zero(masterKey)
		return nil, fmt.Errorf(
			"%w: --key must decode to %d bytes, got %d",
			cipherDomain.ErrInvalidKeySize,
			cipherDomain.MasterKeySize,
			len(masterKey),
		)
	}
	return masterKey, nil
}

func readInput(stdio IOTuple, path string) ([]byte, error) {
	if path == stdioPath {
		data, err := io.ReadAll(stdio.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

func writeOutput(stdio IOTuple, path string, data []byte) error {
	if path == stdioPath {
		if _, err := stdio.Writer.Write(data); err != nil {
			return fmt.Errorf("failed to write stdout: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
