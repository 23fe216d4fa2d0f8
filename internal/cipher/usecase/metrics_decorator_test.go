package usecase_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	"github.com/allisson/reptend/internal/cipher/usecase"
	usecaseMocks "github.com/allisson/reptend/internal/cipher/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordBytes(ctx context.Context, domain, operation string, n int) {
	m.Called(ctx, domain, operation, n)
}

func expectRecorded(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "cipher", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "cipher", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestCipherKeyUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	key := &cipherDomain.CipherKey{ID: uuid.Must(uuid.NewV7()), Name: "payments", Version: 1, Prime: big.NewInt(113)}

	t.Run("Create_Success", func(t *testing.T) {
		next := &usecaseMocks.MockCipherKeyUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewCipherKeyUseCaseWithMetrics(next, m)

		next.On("Create", ctx, "payments", 64).Return(key, nil).Once()
		expectRecorded(m, ctx, "cipher_key_create", "success")

		result, err := uc.Create(ctx, "payments", 64)
		assert.NoError(t, err)
		assert.Equal(t, key, result)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Rotate_Error", func(t *testing.T) {
		next := &usecaseMocks.MockCipherKeyUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewCipherKeyUseCaseWithMetrics(next, m)

		next.On("Rotate", ctx, "payments", 64).Return(nil, assert.AnError).Once()
		expectRecorded(m, ctx, "cipher_key_rotate", "error")

		result, err := uc.Rotate(ctx, "payments", 64)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, result)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Get_Delete", func(t *testing.T) {
		next := &usecaseMocks.MockCipherKeyUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewCipherKeyUseCaseWithMetrics(next, m)

		next.On("Get", ctx, "payments").Return(key, nil).Once()
		next.On("Delete", ctx, key.ID).Return(cipherDomain.ErrCipherKeyNotFound).Once()
		expectRecorded(m, ctx, "cipher_key_get", "success")
		expectRecorded(m, ctx, "cipher_key_delete", "error")

		_, err := uc.Get(ctx, "payments")
		assert.NoError(t, err)
		assert.ErrorIs(t, uc.Delete(ctx, key.ID), cipherDomain.ErrCipherKeyNotFound)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("List_Success", func(t *testing.T) {
		next := &usecaseMocks.MockCipherKeyUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewCipherKeyUseCaseWithMetrics(next, m)

		next.On("List", ctx, 0, 50).Return([]*cipherDomain.CipherKey{key}, nil).Once()
		expectRecorded(m, ctx, "cipher_key_list", "success")

		keys, err := uc.List(ctx, 0, 50)
		assert.NoError(t, err)
		assert.Len(t, keys, 1)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Encrypt_Decrypt", func(t *testing.T) {
		next := &usecaseMocks.MockCipherKeyUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewCipherKeyUseCaseWithMetrics(next, m)

		sealed := &cipherDomain.EncryptedBlob{Version: 1, Payload: []byte("payload")}
		next.On("Encrypt", ctx, "payments", []byte("KHAN")).Return(sealed, nil).Once()
		next.On("Decrypt", ctx, "payments", []byte("1:bad")).Return(nil, cipherDomain.ErrDecryptionFailed).Once()
		expectRecorded(m, ctx, "cipher_encrypt", "success")
		m.On("RecordBytes", ctx, "cipher", "cipher_encrypt", 4).Return().Once()
		expectRecorded(m, ctx, "cipher_decrypt", "error")

		result, err := uc.Encrypt(ctx, "payments", []byte("KHAN"))
		assert.NoError(t, err)
		assert.Equal(t, sealed, result)

		_, err = uc.Decrypt(ctx, "payments", []byte("1:bad"))
		assert.ErrorIs(t, err, cipherDomain.ErrDecryptionFailed)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Decrypt_RecordsPlaintextBytes", func(t *testing.T) {
		next := &usecaseMocks.MockCipherKeyUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewCipherKeyUseCaseWithMetrics(next, m)

		opened := &cipherDomain.EncryptedBlob{Version: 1, Plaintext: []byte("ABCDEF")}
		next.On("Decrypt", ctx, "payments", []byte("1:ok")).Return(opened, nil).Once()
		expectRecorded(m, ctx, "cipher_decrypt", "success")
		m.On("RecordBytes", ctx, "cipher", "cipher_decrypt", 6).Return().Once()

		result, err := uc.Decrypt(ctx, "payments", []byte("1:ok"))
		assert.NoError(t, err)
		assert.Equal(t, opened, result)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})
}

func TestPrimeUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	next := &usecaseMocks.MockPrimeUseCase{}
	m := &mockBusinessMetrics{}
	uc := usecase.NewPrimeUseCaseWithMetrics(next, m)

	next.On("Generate", ctx, 64).Return(big.NewInt(113), nil).Once()
	next.On("Check", ctx, big.NewInt(11)).Return(false, nil).Once()
	expectRecorded(m, ctx, "prime_generate", "success")
	expectRecorded(m, ctx, "prime_check", "success")

	p, err := uc.Generate(ctx, 64)
	assert.NoError(t, err)
	assert.Equal(t, int64(113), p.Int64())

	ok, err := uc.Check(ctx, big.NewInt(11))
	assert.NoError(t, err)
	assert.False(t, ok)

	next.AssertExpectations(t)
	m.AssertExpectations(t)
}
