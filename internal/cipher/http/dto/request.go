// Package dto provides the request and response bodies of the cipher HTTP API.
package dto

import (
	"math/big"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/reptend/internal/validation"
)

// CreateCipherKeyRequest creates version 1 of a named cipher key.
// PrimeBits 0 selects CIPHER_DEFAULT_PRIME_BITS.
type CreateCipherKeyRequest struct {
	Name      string `json:"name"`
	PrimeBits int    `json:"prime_bits"`
}

func (r *CreateCipherKeyRequest) Validate(maxPrimeBits int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.KeyName,
		),
		validation.Field(&r.PrimeBits, customValidation.PrimeBits(maxPrimeBits)),
	)
}

// RotateCipherKeyRequest adds a version with a freshly generated prime.
type RotateCipherKeyRequest struct {
	PrimeBits int `json:"prime_bits"`
}

func (r *RotateCipherKeyRequest) Validate(maxPrimeBits int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PrimeBits, customValidation.PrimeBits(maxPrimeBits)),
	)
}

// EncryptRequest carries base64-encoded plaintext.
type EncryptRequest struct {
	Plaintext string `json:"plaintext"`
}

func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Plaintext,
			validation.Required,
			customValidation.Base64,
		),
	)
}

// DecryptRequest carries a "version:base64" ciphertext returned by the encrypt endpoint.
type DecryptRequest struct {
	Ciphertext string `json:"ciphertext"`
}

func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Ciphertext,
			validation.Required,
			customValidation.EncryptedBlob,
		),
	)
}

// GeneratePrimeRequest asks for a random full reptend prime.
type GeneratePrimeRequest struct {
	Bits int `json:"bits"`
}

func (r *GeneratePrimeRequest) Validate(maxPrimeBits int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Bits, customValidation.PrimeBits(maxPrimeBits)),
	)
}

// CheckPrimeRequest carries a decimal candidate.
type CheckPrimeRequest struct {
	Prime string `json:"prime"`
}

func (r *CheckPrimeRequest) Validate(maxPrimeBits int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Prime,
			validation.Required,
			customValidation.DecimalPrime(maxPrimeBits),
		),
	)
}

// Value returns the candidate as an integer. Call only after Validate succeeds.
func (r *CheckPrimeRequest) Value() *big.Int {
	p, _ := new(big.Int).SetString(r.Prime, 10)
	return p
}
