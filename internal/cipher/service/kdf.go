package service

import (
	"crypto/hmac"
	"crypto/sha256"
)

// DeriveKey returns HMAC-SHA256(key=masterKey, message=salt), the per-message key
// that seeds the keystream.
func DeriveKey(masterKey, salt []byte) []byte {
	mac := hmac.New(sha256.New, masterKey)
	mac.Write(salt)
	return mac.Sum(nil)
}

// computeMAC authenticates a payload body with the master key.
func computeMAC(masterKey, body []byte) []byte {
	mac := hmac.New(sha256.New, masterKey)
	mac.Write(body)
	return mac.Sum(nil)
}
