package commands

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	cipherService "github.com/allisson/reptend/internal/cipher/service"
	cipherUseCase "github.com/allisson/reptend/internal/cipher/usecase"
)

func newFilePrimeUseCase() cipherUseCase.PrimeUseCase {
	return cipherUseCase.NewPrimeUseCase(cipherService.NewPrimeOracle(), cipherUseCase.PrimePolicy{
		DefaultBits: 64,
		MaxBits:     256,
		Timeout:     10 * time.Second,
	})
}

func randomBase64Key(t *testing.T) string {
	t.Helper()
	key := make([]byte, cipherDomain.MasterKeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(key)
}

func TestEncryptDecryptFile(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	envelope := cipherService.NewEnvelope()
	primes := newFilePrimeUseCase()
	plaintext := []byte("attack at dawn, bring the decimal expansion")

	t.Run("key-stdio", func(t *testing.T) {
		key := FileKey{Key: randomBase64Key(t)}

		var sealed bytes.Buffer
		err := RunEncryptFile(ctx, envelope, primes, logger,
			IOTuple{Reader: bytes.NewReader(plaintext), Writer: &sealed}, "-", "-", key)
		require.NoError(t, err)
		assert.NotContains(t, sealed.String(), "attack")

		var opened bytes.Buffer
		err = RunDecryptFile(envelope, logger,
			IOTuple{Reader: bytes.NewReader(sealed.Bytes()), Writer: &opened}, "-", "-", key)
		require.NoError(t, err)
		assert.Equal(t, plaintext, opened.Bytes())
	})

	t.Run("passphrase-files", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "plain.txt")
		enc := filepath.Join(dir, "plain.txt.enc")
		dec := filepath.Join(dir, "plain.out")
		require.NoError(t, os.WriteFile(in, plaintext, 0o600))

		key := FileKey{Passphrase: "correct horse battery staple"}
		require.NoError(t, RunEncryptFile(ctx, envelope, primes, logger, DefaultIO(), in, enc, key))

		sealed, err := os.ReadFile(enc)
		require.NoError(t, err)
		assert.Greater(t, len(sealed), cipherService.PassphraseSaltSize+len(plaintext))

		info, err := os.Stat(enc)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		require.NoError(t, RunDecryptFile(envelope, logger, DefaultIO(), enc, dec, key))
		opened, err := os.ReadFile(dec)
		require.NoError(t, err)
		assert.Equal(t, plaintext, opened)
	})

	t.Run("wrong-passphrase-writes-nothing", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "plain.txt")
		enc := filepath.Join(dir, "plain.txt.enc")
		dec := filepath.Join(dir, "plain.out")
		require.NoError(t, os.WriteFile(in, plaintext, 0o600))

		require.NoError(t, RunEncryptFile(ctx, envelope, primes, logger, DefaultIO(), in, enc,
			FileKey{Passphrase: "right"}))

		err := RunDecryptFile(envelope, logger, DefaultIO(), enc, dec, FileKey{Passphrase: "wrong"})
		assert.ErrorIs(t, err, cipherDomain.ErrDecryptionFailed)

		_, statErr := os.Stat(dec)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("explicit-prime", func(t *testing.T) {
		p, err := primes.Generate(ctx, 64)
		require.NoError(t, err)
		key := FileKey{Key: randomBase64Key(t), Prime: p.String()}

		var sealed bytes.Buffer
		require.NoError(t, RunEncryptFile(ctx, envelope, primes, logger,
			IOTuple{Reader: bytes.NewReader(plaintext), Writer: &sealed}, "-", "-", key))

		// without the prime the payload is read as embedded-prime mode and fails
		var opened bytes.Buffer
		err = RunDecryptFile(envelope, logger,
			IOTuple{Reader: bytes.NewReader(sealed.Bytes()), Writer: &opened}, "-", "-",
			FileKey{Key: key.Key})
		require.Error(t, err)
		assert.Empty(t, opened.Bytes())

		require.NoError(t, RunDecryptFile(envelope, logger,
			IOTuple{Reader: bytes.NewReader(sealed.Bytes()), Writer: &opened}, "-", "-", key))
		assert.Equal(t, plaintext, opened.Bytes())
	})

	t.Run("rejects-non-full-reptend-prime", func(t *testing.T) {
		key := FileKey{Key: randomBase64Key(t), Prime: "11"}

		var sealed bytes.Buffer
		err := RunEncryptFile(ctx, envelope, primes, logger,
			IOTuple{Reader: bytes.NewReader(plaintext), Writer: &sealed}, "-", "-", key)
		assert.ErrorIs(t, err, cipherDomain.ErrInvalidPrime)
		assert.Empty(t, sealed.Bytes())
	})
}

func TestFileKeyValidation(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	envelope := cipherService.NewEnvelope()
	stdio := IOTuple{Reader: bytes.NewReader([]byte("x")), Writer: &bytes.Buffer{}}

	tests := []struct {
		name    string
		key     FileKey
		wantErr error
		wantMsg string
	}{
		{name: "no-key", key: FileKey{}, wantMsg: "one of --key or --passphrase is required"},
		{name: "both", key: FileKey{Key: "a", Passphrase: "b"}, wantMsg: "mutually exclusive"},
		{name: "bad-base64", key: FileKey{Key: "***"}, wantErr: cipherDomain.ErrInvalidMasterKeyBase64},
		{
			name:    "short-key",
			key:     FileKey{Key: base64.StdEncoding.EncodeToString([]byte("short"))},
			wantErr: cipherDomain.ErrInvalidKeySize,
		},
		{name: "bad-prime", key: FileKey{Passphrase: "p", Prime: "nope"}, wantErr: cipherDomain.ErrInvalidPrime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RunEncryptFile(ctx, envelope, newFilePrimeUseCase(), logger, stdio, "-", "-", tt.key)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}

	t.Run("missing-input-file", func(t *testing.T) {
		err := RunDecryptFile(envelope, logger, stdio, filepath.Join(t.TempDir(), "absent"), "-",
			FileKey{Key: randomBase64Key(t)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read input file")
	})
}
