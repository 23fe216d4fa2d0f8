package domain

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
)

// Payload is the decoded form of an authenticated cipher payload.
//
// Prime is nil for explicit-prime payloads. Slices returned by ParseBody alias the
// input buffer.
type Payload struct {
	Salt       []byte
	IV         []byte
	Prime      *big.Int
	Ciphertext []byte
	MAC        []byte
}

// Embedded reports whether the payload carries its own prime.
func (p *Payload) Embedded() bool {
	return p.Prime != nil
}

// MarshalBody serializes everything the MAC covers: salt, IV, the optional
// length-prefixed prime and the ciphertext.
func (p *Payload) MarshalBody() ([]byte, error) {
	var encodedPrime []byte
	if p.Prime != nil {
		var err error
		if encodedPrime, err = EncodePrime(p.Prime); err != nil {
			return nil, err
		}
	}

	body := make([]byte, 0, HeaderSize+len(encodedPrime)+len(p.Ciphertext))
	body = append(body, p.Salt...)
	body = append(body, p.IV...)
	body = append(body, encodedPrime...)
	body = append(body, p.Ciphertext...)
	return body, nil
}

// EncodePrime returns the 2-byte big-endian length prefix followed by the minimal
// big-endian encoding of prime.
func EncodePrime(prime *big.Int) ([]byte, error) {
	if prime == nil || prime.Sign() <= 0 {
		return nil, fmt.Errorf("%w: prime must be positive", ErrInvalidPrime)
	}
	raw := prime.Bytes()
	if len(raw) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: encoded prime is %d bytes", ErrInvalidPrime, len(raw))
	}

	out := make([]byte, PrimeLengthSize+len(raw))
	binary.BigEndian.PutUint16(out, uint16(len(raw)))
	copy(out[PrimeLengthSize:], raw)
	return out, nil
}

// MinPayloadSize returns the smallest acceptable payload for the given mode.
func MinPayloadSize(embedded bool) int {
	if embedded {
		return MinEmbeddedPayloadSize
	}
	return MinExplicitPayloadSize
}

// SplitMAC checks the payload length for its mode and splits it into the
// authenticated body and the trailing MAC.
func SplitMAC(payload []byte, embedded bool) (body, mac []byte, err error) {
	if minSize := MinPayloadSize(embedded); len(payload) < minSize {
		return nil, nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrPayloadTooShort, len(payload), minSize)
	}
	cut := len(payload) - MACSize
	return payload[:cut], payload[cut:], nil
}

// ParseBody decodes an authenticated body. In embedded mode the prime is read from
// its length-prefixed section; otherwise everything after the IV is ciphertext.
func ParseBody(body []byte, embedded bool) (*Payload, error) {
	if len(body) < HeaderSize {
		return nil, fmt.Errorf("%w: body is %d bytes", ErrPayloadTooShort, len(body))
	}

	p := &Payload{
		Salt: body[:SaltSize],
		IV:   body[SaltSize:HeaderSize],
	}
	rest := body[HeaderSize:]

	if !embedded {
		p.Ciphertext = rest
		return p, nil
	}

	if len(rest) < PrimeLengthSize {
		return nil, fmt.Errorf("%w: missing prime length", ErrMalformedPayload)
	}
	primeLen := int(binary.BigEndian.Uint16(rest))
	rest = rest[PrimeLengthSize:]
	if primeLen == 0 || primeLen > len(rest) {
		return nil, fmt.Errorf("%w: prime length %d with %d bytes remaining", ErrMalformedPayload, primeLen, len(rest))
	}

	prime := new(big.Int).SetBytes(rest[:primeLen])
	if prime.Cmp(big.NewInt(3)) < 0 {
		return nil, fmt.Errorf("%w: embedded prime %s", ErrMalformedPayload, prime)
	}

	p.Prime = prime
	p.Ciphertext = rest[primeLen:]
	return p, nil
}
