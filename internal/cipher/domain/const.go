// Package domain defines the data model of the reptend cipher: the wire format of
// authenticated payloads, master keys, named cipher keys and the errors reported
// by every layer that handles them.
//
// A payload is a byte string laid out big-endian as
//
//	Salt(16) | IV(16) | [PrimeLen(2) | Prime(PrimeLen)] | Ciphertext(N) | MAC(32)
//
// where the bracketed prime section is present only when the encryptor used the
// default prime (embedded-prime mode). Payloads produced with a caller-managed
// prime omit it (explicit-prime mode) and can only be opened with the same prime.
package domain

const (
	// SaltSize is the size in bytes of the per-message key derivation salt.
	SaltSize = 16

	// IVSize is the size in bytes of the per-message keystream IV.
	IVSize = 16

	// MACSize is the size in bytes of the HMAC-SHA256 tag appended to every payload.
	MACSize = 32

	// DerivedKeySize is the size in bytes of the HMAC-SHA256 derived key.
	DerivedKeySize = 32

	// PrimeLengthSize is the size of the big-endian length prefix of an embedded prime.
	PrimeLengthSize = 2

	// HeaderSize is the size of the salt and IV that open every payload.
	HeaderSize = SaltSize + IVSize

	// MinExplicitPayloadSize is the smallest payload accepted in explicit-prime mode.
	MinExplicitPayloadSize = HeaderSize + MACSize

	// MinEmbeddedPayloadSize is the smallest payload accepted in embedded-prime mode:
	// a one-byte prime and its length prefix on top of the explicit minimum.
	MinEmbeddedPayloadSize = MinExplicitPayloadSize + PrimeLengthSize + 1

	// MinPrimeBits is the smallest prime size GenerateFullReptendPrime accepts.
	MinPrimeBits = 32

	// MasterKeySize is the required size of master keys loaded from configuration.
	MasterKeySize = 32

	// MaxCipherKeyNameLength is the maximum allowed length for cipher key names.
	MaxCipherKeyNameLength = 255
)
