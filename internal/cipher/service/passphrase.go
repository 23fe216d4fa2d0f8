package service

import (
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/argon2"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

// Argon2id parameters for passphrase-derived master keys.
const (
	PassphraseSaltSize = 16
	argon2Time         = 3
	argon2Memory       = 64 * 1024
	argon2Threads      = 4
)

// DeriveMasterKeyFromPassphrase stretches a passphrase into a MasterKeySize key with Argon2id.
func DeriveMasterKeyFromPassphrase(passphrase, salt []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, cipherDomain.ErrEmptyPassphrase
	}
	if len(salt) != PassphraseSaltSize {
		return nil, fmt.Errorf("%w: passphrase salt must be %d bytes", cipherDomain.ErrInvalidKeySize, PassphraseSaltSize)
	}
	return argon2.IDKey(passphrase, salt, argon2Time, argon2Memory, argon2Threads, cipherDomain.MasterKeySize), nil
}

// SealWithPassphrase encrypts plaintext under a key derived from passphrase and
// returns argonSalt || payload.
func (e *Envelope) SealWithPassphrase(plaintext, passphrase []byte, prime *big.Int) ([]byte, error) {
	salt := make([]byte, PassphraseSaltSize)
	if _, err := io.ReadFull(e.random, salt); err != nil {
		return nil, fmt.Errorf("failed to read passphrase salt: %w", err)
	}

	masterKey, err := DeriveMasterKeyFromPassphrase(passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer cipherDomain.Zero(masterKey)

	payload, err := e.Encrypt(plaintext, masterKey, prime)
	if err != nil {
		return nil, err
	}

	return append(salt, payload...), nil
}

// OpenWithPassphrase reverses SealWithPassphrase.
func (e *Envelope) OpenWithPassphrase(sealed, passphrase []byte, prime *big.Int) ([]byte, error) {
	if len(sealed) < PassphraseSaltSize+cipherDomain.MinPayloadSize(prime == nil) {
		return nil, fmt.Errorf("%w: sealed file is %d bytes", cipherDomain.ErrPayloadTooShort, len(sealed))
	}

	masterKey, err := DeriveMasterKeyFromPassphrase(passphrase, sealed[:PassphraseSaltSize])
	if err != nil {
		return nil, err
	}
	defer cipherDomain.Zero(masterKey)

	return e.Decrypt(sealed[PassphraseSaltSize:], masterKey, prime)
}
