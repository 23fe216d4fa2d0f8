package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	"github.com/allisson/reptend/internal/cipher/http/dto"
	cipherMocks "github.com/allisson/reptend/internal/cipher/usecase/mocks"
)

func testCipherKey(version uint) *cipherDomain.CipherKey {
	return &cipherDomain.CipherKey{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        "payments",
		Version:     version,
		Prime:       big.NewInt(2147483659),
		MasterKeyID: "mk1",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestRunCreateCipherKey(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("text", func(t *testing.T) {
		key := testCipherKey(1)
		mockUseCase := &cipherMocks.MockCipherKeyUseCase{}
		mockUseCase.On("Create", ctx, "payments", 0).Return(key, nil)

		var out bytes.Buffer
		err := RunCreateCipherKey(ctx, mockUseCase, logger, &out, "payments", 0, "text")
		require.NoError(t, err)

		assert.Contains(t, out.String(), key.ID.String())
		assert.Contains(t, out.String(), "Version:       1")
		assert.Contains(t, out.String(), "Prime bits:    32")
		assert.Contains(t, out.String(), "Master key ID: mk1")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		key := testCipherKey(1)
		mockUseCase := &cipherMocks.MockCipherKeyUseCase{}
		mockUseCase.On("Create", ctx, "payments", 64).Return(key, nil)

		var out bytes.Buffer
		err := RunCreateCipherKey(ctx, mockUseCase, logger, &out, "payments", 64, "json")
		require.NoError(t, err)

		var resp dto.CipherKeyResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
		assert.Equal(t, key.ID.String(), resp.ID)
		assert.Equal(t, "2147483659", resp.Prime)
	})

	t.Run("conflict", func(t *testing.T) {
		mockUseCase := &cipherMocks.MockCipherKeyUseCase{}
		mockUseCase.On("Create", ctx, "payments", 0).Return(nil, cipherDomain.ErrCipherKeyAlreadyExists)

		var out bytes.Buffer
		err := RunCreateCipherKey(ctx, mockUseCase, logger, &out, "payments", 0, "text")
		require.Error(t, err)
		assert.ErrorIs(t, err, cipherDomain.ErrCipherKeyAlreadyExists)
		assert.Empty(t, out.String())
	})

	t.Run("invalid-format", func(t *testing.T) {
		mockUseCase := &cipherMocks.MockCipherKeyUseCase{}
		err := RunCreateCipherKey(ctx, mockUseCase, logger, &bytes.Buffer{}, "payments", 0, "xml")
		require.Error(t, err)
		mockUseCase.AssertNotCalled(t, "Create")
	})
}

func TestRunRotateCipherKey(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("success", func(t *testing.T) {
		key := testCipherKey(2)
		mockUseCase := &cipherMocks.MockCipherKeyUseCase{}
		mockUseCase.On("Rotate", ctx, "payments", 0).Return(key, nil)

		var out bytes.Buffer
		err := RunRotateCipherKey(ctx, mockUseCase, logger, &out, "payments", 0, "text")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Version:       2")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("not-found", func(t *testing.T) {
		mockUseCase := &cipherMocks.MockCipherKeyUseCase{}
		mockUseCase.On("Rotate", ctx, "missing", 0).Return(nil, cipherDomain.ErrCipherKeyNotFound)

		err := RunRotateCipherKey(ctx, mockUseCase, logger, &bytes.Buffer{}, "missing", 0, "text")
		assert.ErrorIs(t, err, cipherDomain.ErrCipherKeyNotFound)
	})
}
