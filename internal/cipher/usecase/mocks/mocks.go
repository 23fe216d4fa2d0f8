// Package mocks provides mock implementations of the cipher use case interfaces for testing.
package mocks

import (
	"context"
	"math/big"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

// MockCipherKeyRepository is a mock implementation of CipherKeyRepository.
type MockCipherKeyRepository struct {
	mock.Mock
}

// Create mocks the Create method of CipherKeyRepository.
func (m *MockCipherKeyRepository) Create(ctx context.Context, cipherKey *cipherDomain.CipherKey) error {
	args := m.Called(ctx, cipherKey)
	return args.Error(0)
}

// Delete mocks the Delete method of CipherKeyRepository.
func (m *MockCipherKeyRepository) Delete(ctx context.Context, cipherKeyID uuid.UUID) error {
	args := m.Called(ctx, cipherKeyID)
	return args.Error(0)
}

// GetByName mocks the GetByName method of CipherKeyRepository.
func (m *MockCipherKeyRepository) GetByName(ctx context.Context, name string) (*cipherDomain.CipherKey, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cipherDomain.CipherKey), args.Error(1)
}

// GetByNameAndVersion mocks the GetByNameAndVersion method of CipherKeyRepository.
func (m *MockCipherKeyRepository) GetByNameAndVersion(
	ctx context.Context,
	name string,
	version uint,
) (*cipherDomain.CipherKey, error) {
	args := m.Called(ctx, name, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cipherDomain.CipherKey), args.Error(1)
}

// LatestVersion mocks the LatestVersion method of CipherKeyRepository.
func (m *MockCipherKeyRepository) LatestVersion(ctx context.Context, name string) (uint, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(uint), args.Error(1)
}

// List mocks the List method of CipherKeyRepository.
func (m *MockCipherKeyRepository) List(ctx context.Context, offset, limit int) ([]*cipherDomain.CipherKey, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cipherDomain.CipherKey), args.Error(1)
}

// MockCipherKeyUseCase is a mock implementation of CipherKeyUseCase.
type MockCipherKeyUseCase struct {
	mock.Mock
}

// Create mocks the Create method of CipherKeyUseCase.
func (m *MockCipherKeyUseCase) Create(
	ctx context.Context,
	name string,
	primeBits int,
) (*cipherDomain.CipherKey, error) {
	args := m.Called(ctx, name, primeBits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cipherDomain.CipherKey), args.Error(1)
}

// Rotate mocks the Rotate method of CipherKeyUseCase.
func (m *MockCipherKeyUseCase) Rotate(
	ctx context.Context,
	name string,
	primeBits int,
) (*cipherDomain.CipherKey, error) {
	args := m.Called(ctx, name, primeBits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cipherDomain.CipherKey), args.Error(1)
}

// Get mocks the Get method of CipherKeyUseCase.
func (m *MockCipherKeyUseCase) Get(ctx context.Context, name string) (*cipherDomain.CipherKey, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cipherDomain.CipherKey), args.Error(1)
}

// List mocks the List method of CipherKeyUseCase.
func (m *MockCipherKeyUseCase) List(ctx context.Context, offset, limit int) ([]*cipherDomain.CipherKey, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cipherDomain.CipherKey), args.Error(1)
}

// Delete mocks the Delete method of CipherKeyUseCase.
func (m *MockCipherKeyUseCase) Delete(ctx context.Context, cipherKeyID uuid.UUID) error {
	args := m.Called(ctx, cipherKeyID)
	return args.Error(0)
}

// Encrypt mocks the Encrypt method of CipherKeyUseCase.
func (m *MockCipherKeyUseCase) Encrypt(
	ctx context.Context,
	name string,
	plaintext []byte,
) (*cipherDomain.EncryptedBlob, error) {
	args := m.Called(ctx, name, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cipherDomain.EncryptedBlob), args.Error(1)
}

// Decrypt mocks the Decrypt method of CipherKeyUseCase.
func (m *MockCipherKeyUseCase) Decrypt(
	ctx context.Context,
	name string,
	blob []byte,
) (*cipherDomain.EncryptedBlob, error) {
	args := m.Called(ctx, name, blob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cipherDomain.EncryptedBlob), args.Error(1)
}

// MockPrimeUseCase is a mock implementation of PrimeUseCase.
type MockPrimeUseCase struct {
	mock.Mock
}

// Generate mocks the Generate method of PrimeUseCase.
func (m *MockPrimeUseCase) Generate(ctx context.Context, bits int) (*big.Int, error) {
	args := m.Called(ctx, bits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

// Check mocks the Check method of PrimeUseCase.
func (m *MockPrimeUseCase) Check(ctx context.Context, p *big.Int) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}
