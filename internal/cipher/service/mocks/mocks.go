// Package mocks provides mock implementations of the cipher service interfaces for testing.
package mocks

import (
	"context"
	"math/big"

	"github.com/stretchr/testify/mock"
)

// MockCipher is a mock implementation of Cipher.
type MockCipher struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of Cipher.
func (m *MockCipher) Encrypt(plaintext, masterKey []byte, prime *big.Int) ([]byte, error) {
	args := m.Called(plaintext, masterKey, prime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Decrypt mocks the Decrypt method of Cipher.
func (m *MockCipher) Decrypt(payload, masterKey []byte, prime *big.Int) ([]byte, error) {
	args := m.Called(payload, masterKey, prime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockPrimeOracle is a mock implementation of PrimeOracle.
type MockPrimeOracle struct {
	mock.Mock
}

// IsFullReptendPrime mocks the IsFullReptendPrime method of PrimeOracle.
func (m *MockPrimeOracle) IsFullReptendPrime(ctx context.Context, p *big.Int) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

// GenerateFullReptendPrime mocks the GenerateFullReptendPrime method of PrimeOracle.
func (m *MockPrimeOracle) GenerateFullReptendPrime(ctx context.Context, bits int) (*big.Int, error) {
	args := m.Called(ctx, bits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}
