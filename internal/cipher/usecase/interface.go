package usecase

import (
	"context"
	"math/big"

	"github.com/google/uuid"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

// CipherKeyRepository defines the interface for cipher key persistence.
type CipherKeyRepository interface {
	Create(ctx context.Context, cipherKey *cipherDomain.CipherKey) error
	Delete(ctx context.Context, cipherKeyID uuid.UUID) error
	// GetByName returns the latest non-deleted version of a named key.
	GetByName(ctx context.Context, name string) (*cipherDomain.CipherKey, error)
	GetByNameAndVersion(ctx context.Context, name string, version uint) (*cipherDomain.CipherKey, error)
	// LatestVersion returns the highest version ever stored under name, counting
	// soft-deleted versions, or 0 if there is none.
	LatestVersion(ctx context.Context, name string) (uint, error)
	List(ctx context.Context, offset, limit int) ([]*cipherDomain.CipherKey, error)
}

// CipherKeyUseCase defines the lifecycle and encryption operations for named cipher keys.
type CipherKeyUseCase interface {
	// Create generates a prime of primeBits bits (0 selects the configured default)
	// and stores it as version 1 of name.
	Create(ctx context.Context, name string, primeBits int) (*cipherDomain.CipherKey, error)
	Rotate(ctx context.Context, name string, primeBits int) (*cipherDomain.CipherKey, error)
	Get(ctx context.Context, name string) (*cipherDomain.CipherKey, error)
	List(ctx context.Context, offset, limit int) ([]*cipherDomain.CipherKey, error)
	Delete(ctx context.Context, cipherKeyID uuid.UUID) error
	Encrypt(ctx context.Context, name string, plaintext []byte) (*cipherDomain.EncryptedBlob, error)
	// Decrypt opens a "version:base64" blob with the version it names.
	//
	// The returned blob's Plaintext must be zeroed by the caller with cipherDomain.Zero.
	Decrypt(ctx context.Context, name string, blob []byte) (*cipherDomain.EncryptedBlob, error)
}

// PrimeUseCase exposes the prime oracle under the configured size and time limits.
type PrimeUseCase interface {
	Generate(ctx context.Context, bits int) (*big.Int, error)
	Check(ctx context.Context, p *big.Int) (bool, error)
}
