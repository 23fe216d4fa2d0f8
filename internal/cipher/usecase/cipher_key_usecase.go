// Package usecase orchestrates cipher keys: named, versioned full reptend primes
// bound to a master key.
//
// Encrypt always uses the latest version of a key and tags the payload with that
// version. Decrypt reads the version from the blob, so data sealed before a rotation
// stays readable until the old version is deleted.
//
// Payloads are produced in explicit-prime mode. The prime lives in the database row,
// the master key lives in the process, and the payload carries neither.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	cipherService "github.com/allisson/reptend/internal/cipher/service"
	"github.com/allisson/reptend/internal/database"
)

type cipherKeyUseCase struct {
	txManager      database.TxManager
	cipherKeyRepo  CipherKeyRepository
	primes         PrimeUseCase
	cipher         cipherService.Cipher
	masterKeyChain *cipherDomain.MasterKeyChain
}

func (c *cipherKeyUseCase) getMasterKey(id string) (*cipherDomain.MasterKey, error) {
	masterKey, ok := c.masterKeyChain.Get(id)
	if !ok {
		return nil, cipherDomain.ErrMasterKeyNotFound
	}
	return masterKey, nil
}

// newKey generates a prime and builds an unnumbered cipher key record bound to
// the active master key.
func (c *cipherKeyUseCase) newKey(
	ctx context.Context,
	name string,
	primeBits int,
) (*cipherDomain.CipherKey, error) {
	if _, err := c.masterKeyChain.Active(); err != nil {
		return nil, err
	}

	prime, err := c.primes.Generate(ctx, primeBits)
	if err != nil {
		return nil, err
	}

	return &cipherDomain.CipherKey{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        name,
		Prime:       prime,
		MasterKeyID: c.masterKeyChain.ActiveMasterKeyID(),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Create stores version 1 of a new named key. It fails with ErrCipherKeyAlreadyExists
// if the name has ever held a version, even a soft-deleted one; use Rotate to add
// versions to such a name.
func (c *cipherKeyUseCase) Create(
	ctx context.Context,
	name string,
	primeBits int,
) (*cipherDomain.CipherKey, error) {
	latest, err := c.cipherKeyRepo.LatestVersion(ctx, name)
	if err != nil {
		return nil, err
	}
	if latest > 0 {
		return nil, cipherDomain.ErrCipherKeyAlreadyExists
	}

	cipherKey, err := c.newKey(ctx, name, primeBits)
	if err != nil {
		return nil, err
	}
	cipherKey.Version = 1

	if err := c.cipherKeyRepo.Create(ctx, cipherKey); err != nil {
		return nil, err
	}

	return cipherKey, nil
}

// Rotate adds a version numbered one past the highest version the name has ever
// held, so soft-deleted versions are never reused. Rotating an unused name creates
// version 1. The prime is generated before the transaction opens.
func (c *cipherKeyUseCase) Rotate(
	ctx context.Context,
	name string,
	primeBits int,
) (*cipherDomain.CipherKey, error) {
	newCipherKey, err := c.newKey(ctx, name, primeBits)
	if err != nil {
		return nil, err
	}

	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		latest, err := c.cipherKeyRepo.LatestVersion(txCtx, name)
		if err != nil {
			return err
		}

		newCipherKey.Version = latest + 1
		return c.cipherKeyRepo.Create(txCtx, newCipherKey)
	})
	if err != nil {
		return nil, err
	}

	return newCipherKey, nil
}

// Get returns the latest version of a named key.
func (c *cipherKeyUseCase) Get(ctx context.Context, name string) (*cipherDomain.CipherKey, error) {
	return c.cipherKeyRepo.GetByName(ctx, name)
}

// List returns every live key version, newest version first within a name.
func (c *cipherKeyUseCase) List(ctx context.Context, offset, limit int) ([]*cipherDomain.CipherKey, error) {
	return c.cipherKeyRepo.List(ctx, offset, limit)
}

// Delete soft-deletes one version of a key.
func (c *cipherKeyUseCase) Delete(ctx context.Context, cipherKeyID uuid.UUID) error {
	return c.cipherKeyRepo.Delete(ctx, cipherKeyID)
}

// Encrypt seals plaintext with the latest version of a named key.
func (c *cipherKeyUseCase) Encrypt(
	ctx context.Context,
	name string,
	plaintext []byte,
) (*cipherDomain.EncryptedBlob, error) {
	cipherKey, err := c.cipherKeyRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	masterKey, err := c.getMasterKey(cipherKey.MasterKeyID)
	if err != nil {
		return nil, err
	}

	payload, err := c.cipher.Encrypt(plaintext, masterKey.Key, cipherKey.Prime)
	if err != nil {
		return nil, err
	}

	return &cipherDomain.EncryptedBlob{
		Version: cipherKey.Version,
		Payload: payload,
	}, nil
}

// Decrypt opens a blob produced by Encrypt with the key version it names.
func (c *cipherKeyUseCase) Decrypt(
	ctx context.Context,
	name string,
	blob []byte,
) (*cipherDomain.EncryptedBlob, error) {
	encryptedBlob, err := cipherDomain.NewEncryptedBlob(string(blob))
	if err != nil {
		return nil, err
	}

	cipherKey, err := c.cipherKeyRepo.GetByNameAndVersion(ctx, name, encryptedBlob.Version)
	if err != nil {
		return nil, err
	}

	masterKey, err := c.getMasterKey(cipherKey.MasterKeyID)
	if err != nil {
		return nil, err
	}

	plaintext, err := c.cipher.Decrypt(encryptedBlob.Payload, masterKey.Key, cipherKey.Prime)
	if err != nil {
		return nil, err
	}

	return &cipherDomain.EncryptedBlob{
		Version:   encryptedBlob.Version,
		Plaintext: plaintext,
	}, nil
}

// NewCipherKeyUseCase creates a CipherKeyUseCase. Primes for new versions come from
// primes, so they obey its size and time limits.
func NewCipherKeyUseCase(
	txManager database.TxManager,
	cipherKeyRepo CipherKeyRepository,
	primes PrimeUseCase,
	cipher cipherService.Cipher,
	masterKeyChain *cipherDomain.MasterKeyChain,
) CipherKeyUseCase {
	return &cipherKeyUseCase{
		txManager:      txManager,
		cipherKeyRepo:  cipherKeyRepo,
		primes:         primes,
		cipher:         cipher,
		masterKeyChain: masterKeyChain,
	}
}
