package service

import (
	"crypto/hmac"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

// Envelope is the authenticated encryption front end. It frames
// salt || iv || [len16 || prime] || ciphertext || mac, where the MAC is
// HMAC-SHA256 over everything before it keyed with the master key.
//
// An Envelope holds no key material and is safe for concurrent use as long as its
// random reader is.
type Envelope struct {
	random io.Reader
}

// EnvelopeOption configures an Envelope.
type EnvelopeOption func(*Envelope)

// WithRandReader replaces crypto/rand as the source of salts and IVs. The salt is
// read first, then the IV. Intended for deterministic tests.
func WithRandReader(r io.Reader) EnvelopeOption {
	return func(e *Envelope) {
		e.random = r
	}
}

// NewEnvelope creates an Envelope reading salts and IVs from crypto/rand unless
// overridden.
func NewEnvelope(opts ...EnvelopeOption) *Envelope {
	e := &Envelope{random: rand.Reader}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encrypt seals plaintext under masterKey.
//
// When prime is nil the default prime is used and embedded in the payload.
// Otherwise prime is used as given and left out of the payload, and the same prime
// must be passed to Decrypt. Encrypt does not re-validate caller-supplied primes.
func (e *Envelope) Encrypt(plaintext, masterKey []byte, prime *big.Int) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, cipherDomain.ErrEmptyPlaintext
	}

	embedded := prime == nil
	if embedded {
		prime = DefaultPrime()
	}
	if err := checkPrimeCapacity(prime, len(plaintext)); err != nil {
		return nil, err
	}

	nonce := make([]byte, cipherDomain.SaltSize+cipherDomain.IVSize)
	if _, err := io.ReadFull(e.random, nonce); err != nil {
		return nil, fmt.Errorf("failed to read salt and iv: %w", err)
	}
	salt := nonce[:cipherDomain.SaltSize]
	iv := nonce[cipherDomain.SaltSize:]

	derivedKey := DeriveKey(masterKey, salt)
	defer cipherDomain.Zero(derivedKey)

	ks, err := NewKeystream(derivedKey, prime, iv)
	if err != nil {
		return nil, err
	}
	defer ks.Wipe()

	payload := &cipherDomain.Payload{
		Salt:       salt,
		IV:         iv,
		Ciphertext: XORStream(plaintext, ks),
	}
	if embedded {
		payload.Prime = prime
	}

	body, err := payload.MarshalBody()
	if err != nil {
		return nil, err
	}

	return append(body, computeMAC(masterKey, body)...), nil
}

// Decrypt authenticates and opens a payload produced by Encrypt.
//
// A nil prime means the payload carries its own prime. The MAC is verified in
// constant time before any field is parsed, so a wrong key, a wrong mode or any
// tampering yields ErrDecryptionFailed and no plaintext.
func (e *Envelope) Decrypt(payload, masterKey []byte, prime *big.Int) ([]byte, error) {
	embedded := prime == nil

	body, mac, err := cipherDomain.SplitMAC(payload, embedded)
	if err != nil {
		return nil, err
	}

	expected := computeMAC(masterKey, body)
	if !hmac.Equal(mac, expected) {
		return nil, cipherDomain.ErrDecryptionFailed
	}

	parsed, err := cipherDomain.ParseBody(body, embedded)
	if err != nil {
		return nil, err
	}
	if embedded {
		prime = parsed.Prime
	}
	if err := checkPrimeCapacity(prime, len(parsed.Ciphertext)); err != nil {
		return nil, err
	}

	derivedKey := DeriveKey(masterKey, parsed.Salt)
	defer cipherDomain.Zero(derivedKey)

	ks, err := NewKeystream(derivedKey, prime, parsed.IV)
	if err != nil {
		return nil, err
	}
	defer ks.Wipe()

	return XORStream(parsed.Ciphertext, ks), nil
}

// checkPrimeCapacity rejects primes that cannot drive a keystream and messages
// longer than its period of p-1 bytes.
func checkPrimeCapacity(prime *big.Int, n int) error {
	if prime.Cmp(big.NewInt(3)) < 0 {
		return cipherDomain.ErrInvalidPrime
	}
	period := new(big.Int).Sub(prime, bigOne)
	if big.NewInt(int64(n)).Cmp(period) > 0 {
		return cipherDomain.ErrPlaintextTooLong
	}
	return nil
}
