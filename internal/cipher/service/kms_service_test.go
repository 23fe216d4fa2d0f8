package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"gocloud.dev/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		require.NotNil(t, keeper)
		defer func() {
			assert.NoError(t, keeper.Close())
		}()

		_, ok := keeper.(*secrets.Keeper)
		assert.True(t, ok, "keeper should be *secrets.Keeper")
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})

	t.Run("Error_EmptyURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "")
		assert.Error(t, err)
		assert.Nil(t, keeper)
	})
}

func TestKMSService_UnwrapsMasterKeyChain(t *testing.T) {
	ctx := context.Background()

	keeper, err := NewKMSService().OpenKeeper(ctx, generateLocalSecretsURI(t))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, keeper.Close())
	}()

	masterKey := make([]byte, cipherDomain.MasterKeySize)
	_, err = rand.Read(masterKey)
	require.NoError(t, err)

	wrapped, err := keeper.(*secrets.Keeper).Encrypt(ctx, masterKey)
	require.NoError(t, err)

	raw := "kms1:" + base64.StdEncoding.EncodeToString(wrapped)
	chain, err := cipherDomain.LoadMasterKeyChain(ctx, raw, "kms1", keeper)
	require.NoError(t, err)
	defer chain.Close()

	active, err := chain.Active()
	require.NoError(t, err)
	assert.Equal(t, masterKey, active.Key)

	// a payload sealed with the unwrapped key opens with it
	payload, err := NewEnvelope().Encrypt([]byte("KHAN"), active.Key, nil)
	require.NoError(t, err)
	plaintext, err := NewEnvelope().Decrypt(payload, masterKey, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("KHAN"), plaintext)
}
