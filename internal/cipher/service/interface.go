// Package service implements the reptend cipher: full reptend prime validation and
// generation, HMAC key derivation, the decimal-expansion keystream, the bulk XOR
// codec and the authenticated envelope that frames salt, IV, optional prime,
// ciphertext and MAC.
//
// Everything in this package is synchronous and free of I/O apart from reading the
// configured random source. A Keystream is owned by exactly one Encrypt or Decrypt
// call and is never shared.
package service

import (
	"context"
	"math/big"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

// Cipher encrypts and decrypts authenticated payloads.
//
// A nil prime selects embedded-prime mode with the default prime; a non-nil prime
// selects explicit-prime mode and must be supplied again on decryption.
type Cipher interface {
	Encrypt(plaintext, masterKey []byte, prime *big.Int) ([]byte, error)
	Decrypt(payload, masterKey []byte, prime *big.Int) ([]byte, error)
}

// PrimeOracle validates and generates full reptend primes.
type PrimeOracle interface {
	// IsFullReptendPrime reports whether 10 is a primitive root modulo p.
	// Returns ErrFactorizationTimeout if ctx ends before p-1 is factored.
	IsFullReptendPrime(ctx context.Context, p *big.Int) (bool, error)

	// GenerateFullReptendPrime returns a random safe full reptend prime of exactly bits bits.
	GenerateFullReptendPrime(ctx context.Context, bits int) (*big.Int, error)
}

// KMSService opens KMS keepers used to unwrap master keys.
type KMSService interface {
	// OpenKeeper opens a keeper for the given key URI.
	// Returns an error if the URI is invalid or the provider cannot be reached.
	OpenKeeper(ctx context.Context, keyURI string) (cipherDomain.KMSKeeper, error)
}
