package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/google/uuid"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	"github.com/allisson/reptend/internal/metrics"
)

const metricsDomain = "cipher"

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func record(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := statusOf(err)
	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// cipherKeyUseCaseWithMetrics decorates CipherKeyUseCase with metrics instrumentation.
type cipherKeyUseCaseWithMetrics struct {
	next    CipherKeyUseCase
	metrics metrics.BusinessMetrics
}

// NewCipherKeyUseCaseWithMetrics wraps a CipherKeyUseCase with metrics recording.
func NewCipherKeyUseCaseWithMetrics(useCase CipherKeyUseCase, m metrics.BusinessMetrics) CipherKeyUseCase {
	return &cipherKeyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *cipherKeyUseCaseWithMetrics) Create(
	ctx context.Context,
	name string,
	primeBits int,
) (*cipherDomain.CipherKey, error) {
	start := time.Now()
	key, err := c.next.Create(ctx, name, primeBits)
	record(ctx, c.metrics, "cipher_key_create", start, err)
	return key, err
}

func (c *cipherKeyUseCaseWithMetrics) Rotate(
	ctx context.Context,
	name string,
	primeBits int,
) (*cipherDomain.CipherKey, error) {
	start := time.Now()
	key, err := c.next.Rotate(ctx, name, primeBits)
	record(ctx, c.metrics, "cipher_key_rotate", start, err)
	return key, err
}

func (c *cipherKeyUseCaseWithMetrics) Get(ctx context.Context, name string) (*cipherDomain.CipherKey, error) {
	start := time.Now()
	key, err := c.next.Get(ctx, name)
	record(ctx, c.metrics, "cipher_key_get", start, err)
	return key, err
}

func (c *cipherKeyUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*cipherDomain.CipherKey, error) {
	start := time.Now()
	keys, err := c.next.List(ctx, offset, limit)
	record(ctx, c.metrics, "cipher_key_list", start, err)
	return keys, err
}

func (c *cipherKeyUseCaseWithMetrics) Delete(ctx context.Context, cipherKeyID uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, cipherKeyID)
	record(ctx, c.metrics, "cipher_key_delete", start, err)
	return err
}

func (c *cipherKeyUseCaseWithMetrics) Encrypt(
	ctx context.Context,
	name string,
	plaintext []byte,
) (*cipherDomain.EncryptedBlob, error) {
	start := time.Now()
	blob, err := c.next.Encrypt(ctx, name, plaintext)
	record(ctx, c.metrics, "cipher_encrypt", start, err)
	if err == nil {
		c.metrics.RecordBytes(ctx, metricsDomain, "cipher_encrypt", len(plaintext))
	}
	return blob, err
}

func (c *cipherKeyUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	name string,
	blob []byte,
) (*cipherDomain.EncryptedBlob, error) {
	start := time.Now()
	result, err := c.next.Decrypt(ctx, name, blob)
	record(ctx, c.metrics, "cipher_decrypt", start, err)
	if err == nil {
		c.metrics.RecordBytes(ctx, metricsDomain, "cipher_decrypt", len(result.Plaintext))
	}
	return result, err
}

// primeUseCaseWithMetrics decorates PrimeUseCase with metrics instrumentation.
type primeUseCaseWithMetrics struct {
	next    PrimeUseCase
	metrics metrics.BusinessMetrics
}

// NewPrimeUseCaseWithMetrics wraps a PrimeUseCase with metrics recording.
func NewPrimeUseCaseWithMetrics(useCase PrimeUseCase, m metrics.BusinessMetrics) PrimeUseCase {
	return &primeUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *primeUseCaseWithMetrics) Generate(ctx context.Context, bits int) (*big.Int, error) {
	start := time.Now()
	prime, err := p.next.Generate(ctx, bits)
	record(ctx, p.metrics, "prime_generate", start, err)
	return prime, err
}

func (p *primeUseCaseWithMetrics) Check(ctx context.Context, prime *big.Int) (bool, error) {
	start := time.Now()
	ok, err := p.next.Check(ctx, prime)
	record(ctx, p.metrics, "prime_check", start, err)
	return ok, err
}
