package service

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

const (
	// trialDivisionBound limits the small-prime table used before Pollard rho.
	trialDivisionBound = 1 << 14

	// rhoBatchSize is the number of rho steps whose differences are multiplied
	// together before a single gcd.
	rhoBatchSize = 128

	millerRabinRounds = 20
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
	bigTen = big.NewInt(10)
)

var smallPrimes = sync.OnceValue(func() []uint64 {
	composite := make([]bool, trialDivisionBound)
	primes := make([]uint64, 0, 2048)
	for i := 2; i < trialDivisionBound; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, uint64(i))
		for j := i * i; j < trialDivisionBound; j += i {
			composite[j] = true
		}
	}
	return primes
})

// distinctPrimeFactors returns the distinct prime factors of n (n >= 2) in no
// particular order. Small factors are removed by trial division, the cofactor is
// split with Pollard rho until every part is a probable prime.
func distinctPrimeFactors(ctx context.Context, n *big.Int) ([]*big.Int, error) {
	seen := make(map[string]struct{})
	factors := make([]*big.Int, 0, 8)
	add := func(f *big.Int) {
		key := f.String()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		factors = append(factors, f)
	}

	m := new(big.Int).Set(n)
	q, r := new(big.Int), new(big.Int)
	d := new(big.Int)
	for _, sp := range smallPrimes() {
		d.SetUint64(sp)
		if new(big.Int).Mul(d, d).Cmp(m) > 0 {
			break
		}
		divided := false
		for {
			q.QuoRem(m, d, r)
			if r.Sign() != 0 {
				break
			}
			m.Set(q)
			divided = true
		}
		if divided {
			add(new(big.Int).Set(d))
		}
	}

	stack := []*big.Int{m}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if c.Cmp(bigOne) == 0 {
			continue
		}
		if c.ProbablyPrime(millerRabinRounds) {
			add(c)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", cipherDomain.ErrFactorizationTimeout, err)
		}

		f, err := pollardRho(ctx, c)
		if err != nil {
			return nil, err
		}
		stack = append(stack, f, new(big.Int).Quo(c, f))
	}

	return factors, nil
}

// pollardRho returns a non-trivial factor of the composite n using Floyd cycle
// detection with batched gcds. The polynomial constant is bumped whenever a batch
// collapses to n itself.
func pollardRho(ctx context.Context, n *big.Int) (*big.Int, error) {
	if n.Bit(0) == 0 {
		return big.NewInt(2), nil
	}

	diff := new(big.Int)
	prod := new(big.Int)
	g := new(big.Int)

	for c := int64(1); ; c++ {
		cc := big.NewInt(c)
		step := func(v *big.Int) {
			v.Mul(v, v)
			v.Add(v, cc)
			v.Mod(v, n)
		}

		x := big.NewInt(2)
		y := big.NewInt(2)
		g.SetInt64(1)

		for g.Cmp(bigOne) == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", cipherDomain.ErrFactorizationTimeout, err)
			}

			xs, ys := new(big.Int).Set(x), new(big.Int).Set(y)
			prod.SetInt64(1)
			for range rhoBatchSize {
				step(x)
				step(y)
				step(y)
				diff.Sub(x, y)
				diff.Abs(diff)
				prod.Mul(prod, diff)
				prod.Mod(prod, n)
			}
			g.GCD(nil, nil, prod, n)

			if g.Cmp(n) == 0 {
				// The batch overshot; replay it one step at a time.
				x, y = xs, ys
				g.SetInt64(1)
				for g.Cmp(bigOne) == 0 {
					step(x)
					step(y)
					step(y)
					diff.Sub(x, y)
					diff.Abs(diff)
					g.GCD(nil, nil, diff, n)
				}
			}
		}

		if g.Cmp(n) != 0 {
			return new(big.Int).Set(g), nil
		}
	}
}
