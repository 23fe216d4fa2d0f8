package domain

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

// CipherKey is a named, versioned full reptend prime bound to a master key.
//
// Payloads produced with a cipher key use explicit-prime mode: the prime lives here,
// not in the payload, and the master key identified by MasterKeyID is the HMAC and
// derivation key. Rotation adds a version; older versions stay available for decryption
// until soft-deleted.
type CipherKey struct {
	ID          uuid.UUID
	Name        string
	Version     uint
	Prime       *big.Int
	MasterKeyID string
	CreatedAt   time.Time
	DeletedAt   *time.Time
}

// PrimeBits returns the bit length of the key's prime.
func (k *CipherKey) PrimeBits() int {
	if k.Prime == nil {
		return 0
	}
	return k.Prime.BitLen()
}
