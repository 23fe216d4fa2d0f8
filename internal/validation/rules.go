// Package validation holds the jellydator/validation rules shared by the HTTP DTOs
// and the CLI flag checks.
package validation

import (
	"encoding/base64"
	"math/big"
	"regexp"

	validation "github.com/jellydator/validation"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	apperrors "github.com/allisson/reptend/internal/errors"
)

var keyNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]{0,62}$`)

// WrapValidationError converts a validation failure into ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// KeyName accepts lowercase slugs of at most 63 characters, usable as URL path segments.
var KeyName = validation.NewStringRuleWithError(
	keyNameRegex.MatchString,
	validation.NewError(
		"validation_key_name",
		"must start with a lowercase letter or digit and contain only lowercase letters, digits, '-' and '_'",
	),
)

// Base64 accepts standard padded base64. Empty strings are left to validation.Required.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// PrimeBits accepts zero (use the configured default) or a size between
// cipherDomain.MinPrimeBits and maxBits.
func PrimeBits(maxBits int) validation.Rule {
	return validation.By(func(value interface{}) error {
		bits, ok := value.(int)
		if !ok {
			return validation.NewError("validation_prime_bits_type", "must be an integer")
		}
		if bits == 0 {
			return nil
		}
		if bits < cipherDomain.MinPrimeBits || bits > maxBits {
			return validation.NewError("validation_prime_bits", "must be 0 or between {{.min}} and {{.max}}").
				SetParams(map[string]interface{}{"min": cipherDomain.MinPrimeBits, "max": maxBits})
		}
		return nil
	})
}

// DecimalPrime accepts a positive base-10 integer of at most maxBits bits. It does
// not check primality.
func DecimalPrime(maxBits int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_decimal_prime_type", "must be a string")
		}
		if s == "" {
			return nil
		}
		p, ok := new(big.Int).SetString(s, 10)
		if !ok || p.Sign() <= 0 {
			return validation.NewError("validation_decimal_prime", "must be a positive decimal integer")
		}
		if p.BitLen() > maxBits {
			return validation.NewError("validation_decimal_prime_size", "exceeds the maximum prime size")
		}
		return nil
	})
}

// EncryptedBlob accepts the "version:base64(payload)" form returned by the encrypt endpoint.
var EncryptedBlob = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_encrypted_blob_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	if _, err := cipherDomain.NewEncryptedBlob(s); err != nil {
		return validation.NewError("validation_encrypted_blob", "must be in the form 'version:base64'")
	}
	return nil
})
