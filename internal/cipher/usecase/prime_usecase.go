package usecase

import (
	"context"
	"fmt"
	"math/big"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	cipherService "github.com/allisson/reptend/internal/cipher/service"
	apperrors "github.com/allisson/reptend/internal/errors"
)

type primeUseCase struct {
	oracle cipherService.PrimeOracle
	policy PrimePolicy
}

// Generate returns a fresh full reptend prime of the requested size.
// A generation that outlives the policy timeout fails with ErrFactorizationTimeout.
func (u *primeUseCase) Generate(ctx context.Context, bits int) (*big.Int, error) {
	bits, err := u.policy.resolveBits(bits)
	if err != nil {
		return nil, err
	}

	ctx, cancel := u.policy.withTimeout(ctx)
	defer cancel()

	p, err := u.oracle.GenerateFullReptendPrime(ctx, bits)
	if apperrors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %v", cipherDomain.ErrFactorizationTimeout, err)
	}
	return p, err
}

// Check validates p. Values larger than the policy's MaxBits are refused before
// any factoring is attempted.
func (u *primeUseCase) Check(ctx context.Context, p *big.Int) (bool, error) {
	if p == nil {
		return false, cipherDomain.ErrInvalidPrime
	}
	if u.policy.MaxBits > 0 && p.BitLen() > u.policy.MaxBits {
		return false, cipherDomain.ErrPrimeBitsTooLarge
	}

	ctx, cancel := u.policy.withTimeout(ctx)
	defer cancel()

	return u.oracle.IsFullReptendPrime(ctx, p)
}

// NewPrimeUseCase creates a PrimeUseCase over oracle.
func NewPrimeUseCase(oracle cipherService.PrimeOracle, policy PrimePolicy) PrimeUseCase {
	return &primeUseCase{oracle: oracle, policy: policy}
}
