package usecase

import (
	"context"
	"time"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

// PrimePolicy bounds prime generation and validation requests.
type PrimePolicy struct {
	// DefaultBits is used when a request does not name a size.
	DefaultBits int
	// MaxBits caps requested sizes. Zero means no cap.
	MaxBits int
	// Timeout bounds a single generate or check call. Zero means no timeout.
	Timeout time.Duration
}

func (p PrimePolicy) resolveBits(bits int) (int, error) {
	if bits == 0 {
		bits = p.DefaultBits
	}
	if bits < cipherDomain.MinPrimeBits {
		return 0, cipherDomain.ErrPrimeBitsTooSmall
	}
	if p.MaxBits > 0 && bits > p.MaxBits {
		return 0, cipherDomain.ErrPrimeBitsTooLarge
	}
	return bits, nil
}

func (p PrimePolicy) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.Timeout)
}
