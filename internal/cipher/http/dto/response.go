package dto

import (
	"encoding/base64"
	"math/big"
	"time"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

// CipherKeyResponse describes one cipher key version. The prime is public; only the
// master key it is bound to is secret.
type CipherKeyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Version     uint      `json:"version"`
	Prime       string    `json:"prime"`
	PrimeBits   int       `json:"prime_bits"`
	MasterKeyID string    `json:"master_key_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func MapCipherKeyToResponse(cipherKey *cipherDomain.CipherKey) CipherKeyResponse {
	return CipherKeyResponse{
		ID:          cipherKey.ID.String(),
		Name:        cipherKey.Name,
		Version:     cipherKey.Version,
		Prime:       cipherKey.Prime.String(),
		PrimeBits:   cipherKey.PrimeBits(),
		MasterKeyID: cipherKey.MasterKeyID,
		CreatedAt:   cipherKey.CreatedAt,
	}
}

type ListCipherKeysResponse struct {
	Data []CipherKeyResponse `json:"data"`
}

func MapCipherKeysToListResponse(cipherKeys []*cipherDomain.CipherKey) ListCipherKeysResponse {
	data := make([]CipherKeyResponse, 0, len(cipherKeys))
	for _, cipherKey := range cipherKeys {
		data = append(data, MapCipherKeyToResponse(cipherKey))
	}
	return ListCipherKeysResponse{Data: data}
}

type EncryptResponse struct {
	Ciphertext string `json:"ciphertext"`
	Version    uint   `json:"version"`
}

type DecryptResponse struct {
	Plaintext string `json:"plaintext"`
	Version   uint   `json:"version"`
}

// MapDecryptResponse base64-encodes plaintext. The caller still owns and zeroes it.
func MapDecryptResponse(plaintext []byte, version uint) DecryptResponse {
	return DecryptResponse{
		Plaintext: base64.StdEncoding.EncodeToString(plaintext),
		Version:   version,
	}
}

// PrimeResponse reports a prime and whether it is full reptend.
type PrimeResponse struct {
	Prime       string `json:"prime"`
	Bits        int    `json:"bits"`
	FullReptend bool   `json:"full_reptend"`
}

func MapPrimeResponse(p *big.Int, fullReptend bool) PrimeResponse {
	return PrimeResponse{
		Prime:       p.String(),
		Bits:        p.BitLen(),
		FullReptend: fullReptend,
	}
}
