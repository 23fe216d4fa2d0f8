package domain_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/reptend/internal/cipher/domain"
	apperrors "github.com/allisson/reptend/internal/errors"
)

func TestNewEncryptedBlob_Success(t *testing.T) {
	t.Run("ValidInput", func(t *testing.T) {
		payload := []byte("payload bytes")
		input := "3:" + base64.StdEncoding.EncodeToString(payload)

		blob, err := domain.NewEncryptedBlob(input)

		require.NoError(t, err)
		assert.Equal(t, uint(3), blob.Version)
		assert.Equal(t, payload, blob.Payload)
		assert.Nil(t, blob.Plaintext)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		original := domain.EncryptedBlob{Version: 42, Payload: []byte{0x00, 0xff, 0x10}}

		parsed, err := domain.NewEncryptedBlob(original.String())

		require.NoError(t, err)
		assert.Equal(t, original.Version, parsed.Version)
		assert.Equal(t, original.Payload, parsed.Payload)
	})
}

func TestNewEncryptedBlob_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "Error_EmptyString", input: "", wantErr: domain.ErrInvalidBlobFormat},
		{name: "Error_TooManyParts", input: "1:YQ==:extra", wantErr: domain.ErrInvalidBlobFormat},
		{name: "Error_NegativeVersion", input: "-1:YQ==", wantErr: domain.ErrInvalidBlobVersion},
		{name: "Error_TextVersion", input: "v1:YQ==", wantErr: domain.ErrInvalidBlobVersion},
		{name: "Error_InvalidBase64", input: "1:not base64!", wantErr: domain.ErrInvalidBlobBase64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := domain.NewEncryptedBlob(tt.input)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Equal(t, domain.EncryptedBlob{}, blob)
		})
	}
}
