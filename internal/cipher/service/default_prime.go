package service

import (
	"math/big"
	"sync"
)

// defaultPrimeDecimal is a 128-bit safe prime p = 2q+1 for which 10 is a primitive root.
const defaultPrimeDecimal = "291822873301472307838801864404483049343"

var defaultPrime = sync.OnceValue(func() *big.Int {
	p, ok := new(big.Int).SetString(defaultPrimeDecimal, 10)
	if !ok || !IsFullReptendPrime(p) {
		panic("service: default prime is not a full reptend prime")
	}
	return p
})

// DefaultPrime returns a copy of the process-wide default prime. It is validated
// once, on first use.
func DefaultPrime() *big.Int {
	return new(big.Int).Set(defaultPrime())
}

