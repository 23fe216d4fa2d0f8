package service

import (
	"context"
	"crypto/rand"
	"io"
	"math/big"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

// IsFullReptendPrime reports whether p is a prime for which 10 is a primitive root,
// so the decimal expansion of 1/p has period exactly p-1.
//
// It never fails: nil, values below 3 and composites all report false. Use
// IsFullReptendPrimeContext to bound the time spent factoring p-1.
func IsFullReptendPrime(p *big.Int) bool {
	ok, _ := IsFullReptendPrimeContext(context.Background(), p)
	return ok
}

// IsFullReptendPrimeContext is IsFullReptendPrime with cancellation. It returns
// ErrFactorizationTimeout if ctx ends before p-1 has been factored.
func IsFullReptendPrimeContext(ctx context.Context, p *big.Int) (bool, error) {
	if p == nil || p.Cmp(big.NewInt(3)) < 0 {
		return false, nil
	}
	if !p.ProbablyPrime(millerRabinRounds) {
		return false, nil
	}
	// 10 ≡ 0 (mod 5), so 5 can never be full reptend. 2 is already excluded above.
	if p.Cmp(big.NewInt(5)) == 0 {
		return false, nil
	}

	order := new(big.Int).Sub(p, bigOne)
	factors, err := distinctPrimeFactors(ctx, order)
	if err != nil {
		return false, err
	}

	exp := new(big.Int)
	r := new(big.Int)
	for _, q := range factors {
		exp.Quo(order, q)
		if r.Exp(bigTen, exp, p).Cmp(bigOne) == 0 {
			return false, nil
		}
	}
	return true, nil
}

// GenerateFullReptendPrime returns a random safe prime p = 2q+1 with exactly bits
// bits for which 10 is a primitive root, reading randomness from crypto/rand.
func GenerateFullReptendPrime(ctx context.Context, bits int) (*big.Int, error) {
	return generateFullReptendPrime(ctx, rand.Reader, bits)
}

func generateFullReptendPrime(ctx context.Context, random io.Reader, bits int) (*big.Int, error) {
	if bits < cipherDomain.MinPrimeBits {
		return nil, cipherDomain.ErrPrimeBitsTooSmall
	}

	limit := new(big.Int).Lsh(bigOne, uint(bits-1))
	p := new(big.Int)
	r := new(big.Int)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		q, err := rand.Int(random, limit)
		if err != nil {
			return nil, err
		}
		q.SetBit(q, bits-2, 1)
		q.SetBit(q, 0, 1)

		if !sievePasses(q) {
			continue
		}
		if !q.ProbablyPrime(millerRabinRounds) {
			continue
		}

		p.Lsh(q, 1)
		p.Add(p, bigOne)
		if !p.ProbablyPrime(millerRabinRounds) {
			continue
		}

		// The only prime factors of p-1 are 2 and q.
		if r.Exp(bigTen, bigTwo, p).Cmp(bigOne) == 0 {
			continue
		}
		if r.Exp(bigTen, q, p).Cmp(bigOne) == 0 {
			continue
		}

		return new(big.Int).Set(p), nil
	}
}

// sievePasses rejects q early when q or 2q+1 has a small odd prime factor.
// Callers only pass q with at least MinPrimeBits-1 bits, far above the table.
func sievePasses(q *big.Int) bool {
	m := new(big.Int)
	d := new(big.Int)
	for _, sp := range smallPrimes()[1:256] {
		d.SetUint64(sp)
		rem := m.Mod(q, d).Uint64()
		if rem == 0 || (2*rem+1)%sp == 0 {
			return false
		}
	}
	return true
}

// primeOracle is the PrimeOracle backed by the package functions.
type primeOracle struct {
	random io.Reader
}

// NewPrimeOracle creates a PrimeOracle that draws randomness from crypto/rand.
func NewPrimeOracle() PrimeOracle {
	return &primeOracle{random: rand.Reader}
}

func (o *primeOracle) IsFullReptendPrime(ctx context.Context, p *big.Int) (bool, error) {
	return IsFullReptendPrimeContext(ctx, p)
}

func (o *primeOracle) GenerateFullReptendPrime(ctx context.Context, bits int) (*big.Int, error) {
	return generateFullReptendPrime(ctx, o.random, bits)
}
