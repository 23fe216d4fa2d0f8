package service

import (
	"crypto/sha256"
	"math/big"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

// Keystream produces bytes from the decimal expansion of 1/p, starting at a
// position selected by the derived key and IV.
//
// Each output byte is the movement between consecutive remainders (mod 256),
// masked with the first byte of a running SHA-256 chain seeded with
// SHA256(derivedKey || iv). A Keystream is not safe for concurrent use.
type Keystream struct {
	prime    *big.Int
	period   *big.Int
	start    *big.Int
	emitted  uint64
	rem      *big.Int
	prevHash [sha256.Size]byte
	chainIn  [sha256.Size + 1]byte
}

// NewKeystream seeds a keystream for one message. The start position is
// (int(derivedKey) XOR int(iv)) mod (p-1), both read as big-endian unsigned
// integers, and the initial remainder is 10^position mod p.
func NewKeystream(derivedKey []byte, prime *big.Int, iv []byte) (*Keystream, error) {
	if prime == nil || prime.Cmp(big.NewInt(3)) < 0 {
		return nil, cipherDomain.ErrInvalidPrime
	}

	period := new(big.Int).Sub(prime, bigOne)

	start := new(big.Int).SetBytes(derivedKey)
	start.Xor(start, new(big.Int).SetBytes(iv))
	start.Mod(start, period)

	seed := make([]byte, 0, len(derivedKey)+len(iv))
	seed = append(seed, derivedKey...)
	seed = append(seed, iv...)

	ks := &Keystream{
		prime:    new(big.Int).Set(prime),
		period:   period,
		start:    start,
		rem:      new(big.Int).Exp(bigTen, start, prime),
		prevHash: sha256.Sum256(seed),
	}
	cipherDomain.Zero(seed)
	return ks, nil
}

// NextByte advances the expansion by one digit and returns the next keystream byte.
func (k *Keystream) NextByte() byte {
	current := lowByte(k.rem)
	k.rem.Mul(k.rem, bigTen)
	k.rem.Mod(k.rem, k.prime)
	next := lowByte(k.rem)

	// byte subtraction wraps, which is exactly (next-current) mod 256
	out := (next - current) ^ k.prevHash[0]

	copy(k.chainIn[:sha256.Size], k.prevHash[:])
	k.chainIn[sha256.Size] = out
	k.prevHash = sha256.Sum256(k.chainIn[:])

	k.emitted++
	return out
}

// Read fills b with keystream bytes. It never returns an error.
func (k *Keystream) Read(b []byte) (int, error) {
	for i := range b {
		b[i] = k.NextByte()
	}
	return len(b), nil
}

// Position returns the current position in the expansion, (start + emitted) mod (p-1).
func (k *Keystream) Position() *big.Int {
	pos := new(big.Int).SetUint64(k.emitted)
	pos.Add(pos, k.start)
	return pos.Mod(pos, k.period)
}

// Period returns p-1, the number of bytes available before the expansion repeats.
func (k *Keystream) Period() *big.Int {
	return new(big.Int).Set(k.period)
}

// Wipe clears the keystream state. The Keystream must not be used afterwards.
func (k *Keystream) Wipe() {
	cipherDomain.Zero(k.prevHash[:])
	cipherDomain.Zero(k.chainIn[:])
	k.rem.SetInt64(0)
	k.start.SetInt64(0)
}

// lowByte returns x mod 256 for non-negative x.
func lowByte(x *big.Int) byte {
	words := x.Bits()
	if len(words) == 0 {
		return 0
	}
	return byte(words[0])
}
