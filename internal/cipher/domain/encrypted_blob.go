package domain

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// EncryptedBlob is the textual envelope handed to API clients: the cipher key
// version that produced a payload plus the payload itself, serialized as
// "version:base64(payload)". Plaintext is only populated on decryption and must be
// zeroed by the caller after use.
type EncryptedBlob struct {
	Version   uint
	Payload   []byte
	Plaintext []byte
}

// NewEncryptedBlob parses the "version:base64(payload)" form.
func NewEncryptedBlob(content string) (EncryptedBlob, error) {
	parts := strings.Split(content, ":")
	if len(parts) != 2 {
		return EncryptedBlob{}, fmt.Errorf(
			"%w: expected format 'version:payload', got %d parts",
			ErrInvalidBlobFormat,
			len(parts),
		)
	}

	version, err := strconv.ParseUint(parts[0], 10, 0)
	if err != nil {
		return EncryptedBlob{}, fmt.Errorf("%w: %v", ErrInvalidBlobVersion, err)
	}

	payload, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return EncryptedBlob{}, fmt.Errorf("%w: %v", ErrInvalidBlobBase64, err)
	}

	return EncryptedBlob{
		Version: uint(version),
		Payload: payload,
	}, nil
}

// String serializes the blob as "version:base64(payload)".
func (eb EncryptedBlob) String() string {
	return fmt.Sprintf("%d:%s", eb.Version, base64.StdEncoding.EncodeToString(eb.Payload))
}
