package domain

import (
	"github.com/allisson/reptend/internal/errors"
)

// Cipher error definitions.
//
// Every error wraps one of the sentinels from internal/errors so the HTTP layer
// can map it to a status code without knowing about the cipher.
var (
	// ErrEmptyPlaintext is returned by Encrypt when there is nothing to encrypt.
	ErrEmptyPlaintext = errors.Wrap(errors.ErrInvalidInput, "plaintext cannot be empty")

	// ErrPlaintextTooLong indicates the message exceeds the keystream period (p-1 bytes)
	// of the selected prime.
	ErrPlaintextTooLong = errors.Wrap(errors.ErrInvalidInput, "plaintext exceeds keystream period")

	// ErrPrimeBitsTooSmall is returned when a prime smaller than MinPrimeBits is requested.
	ErrPrimeBitsTooSmall = errors.Wrap(errors.ErrInvalidInput, "minimum prime size is 32 bits")

	// ErrPrimeBitsTooLarge is returned when a prime larger than the configured limit is requested.
	ErrPrimeBitsTooLarge = errors.Wrap(errors.ErrInvalidInput, "prime size exceeds configured maximum")

	// ErrInvalidPrime indicates a value that cannot drive the keystream
	// (smaller than 3, or not a full reptend prime where that is checked).
	ErrInvalidPrime = errors.Wrap(errors.ErrInvalidInput, "invalid full reptend prime")

	// ErrPayloadTooShort indicates a payload shorter than the minimum for its mode.
	// The payload is never partially parsed.
	ErrPayloadTooShort = errors.Wrap(errors.ErrInvalidInput, "payload is too short")

	// ErrMalformedPayload indicates an authenticated body whose prime section is inconsistent.
	ErrMalformedPayload = errors.Wrap(errors.ErrInvalidInput, "malformed payload")

	// ErrDecryptionFailed indicates MAC verification failed. No plaintext is produced.
	ErrDecryptionFailed = errors.Wrap(errors.ErrAuthenticationFailed, "MAC verification failed")

	// ErrFactorizationTimeout indicates the prime check gave up before factoring p-1.
	ErrFactorizationTimeout = errors.Wrap(errors.ErrTimeout, "factorization did not complete")

	// ErrInvalidKeySize indicates a configured master key is not MasterKeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrMasterKeysNotSet indicates MASTER_KEYS is empty.
	ErrMasterKeysNotSet = errors.Wrap(errors.ErrInvalidInput, "MASTER_KEYS not set")

	// ErrActiveMasterKeyIDNotSet indicates ACTIVE_MASTER_KEY_ID is empty.
	ErrActiveMasterKeyIDNotSet = errors.Wrap(errors.ErrInvalidInput, "ACTIVE_MASTER_KEY_ID not set")

	// ErrInvalidMasterKeysFormat indicates a MASTER_KEYS entry is not "id:base64".
	ErrInvalidMasterKeysFormat = errors.Wrap(errors.ErrInvalidInput, "invalid MASTER_KEYS format")

	// ErrInvalidMasterKeyBase64 indicates a MASTER_KEYS entry is not valid base64.
	ErrInvalidMasterKeyBase64 = errors.Wrap(errors.ErrInvalidInput, "invalid master key base64")

	// ErrActiveMasterKeyNotFound indicates ACTIVE_MASTER_KEY_ID names an unknown key.
	ErrActiveMasterKeyNotFound = errors.Wrap(errors.ErrNotFound, "active master key not found")

	// ErrMasterKeyNotFound indicates a cipher key references a master key that is not loaded.
	ErrMasterKeyNotFound = errors.Wrap(errors.ErrNotFound, "master key not found")

	// ErrKMSDecryptionFailed indicates the KMS keeper could not unwrap a master key.
	ErrKMSDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "failed to decrypt master key with KMS")

	// ErrCipherKeyNotFound indicates the cipher key was not found.
	ErrCipherKeyNotFound = errors.Wrap(errors.ErrNotFound, "cipher key not found")

	// ErrCipherKeyAlreadyExists indicates a cipher key with the same name and version already exists.
	ErrCipherKeyAlreadyExists = errors.Wrap(errors.ErrConflict, "cipher key already exists")

	// ErrInvalidBlobFormat indicates the encrypted blob is not "version:base64".
	ErrInvalidBlobFormat = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted blob format")

	// ErrInvalidBlobVersion indicates the blob version cannot be parsed.
	ErrInvalidBlobVersion = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted blob version")

	// ErrInvalidBlobBase64 indicates the blob payload is not valid base64.
	ErrInvalidBlobBase64 = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted blob base64")

	// ErrEmptyPassphrase indicates passphrase-based sealing was requested without a passphrase.
	ErrEmptyPassphrase = errors.Wrap(errors.ErrInvalidInput, "passphrase cannot be empty")
)
