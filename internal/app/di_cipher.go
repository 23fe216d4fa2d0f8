package app

import (
	"context"
	"fmt"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	cipherHTTP "github.com/allisson/reptend/internal/cipher/http"
	cipherRepository "github.com/allisson/reptend/internal/cipher/repository"
	cipherService "github.com/allisson/reptend/internal/cipher/service"
	cipherUseCase "github.com/allisson/reptend/internal/cipher/usecase"
	"github.com/allisson/reptend/internal/database"
)

// KMSService returns the service that opens KMS keepers.
func (c *Container) KMSService() cipherService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cipherService.NewKMSService()
	})
	return c.kmsService
}

// MasterKeyChain returns the master keys from MASTER_KEYS, unwrapped through the
// configured KMS when KMS_PROVIDER and KMS_KEY_URI are set.
func (c *Container) MasterKeyChain() (*cipherDomain.MasterKeyChain, error) {
	c.masterKeyChainInit.Do(func() {
		mkc, err := c.initMasterKeyChain()
		c.store("masterKeyChain", err, func() { c.masterKeyChain = mkc })
	})
	if err := c.initError("masterKeyChain"); err != nil {
		return nil, err
	}
	return c.masterKeyChain, nil
}

// PrimeOracle returns the full reptend prime validator and generator.
func (c *Container) PrimeOracle() cipherService.PrimeOracle {
	c.primeOracleInit.Do(func() {
		c.primeOracle = cipherService.NewPrimeOracle()
	})
	return c.primeOracle
}

// Envelope returns the authenticated cipher.
func (c *Container) Envelope() *cipherService.Envelope {
	c.envelopeInit.Do(func() {
		c.envelope = cipherService.NewEnvelope()
	})
	return c.envelope
}

// CipherKeyRepository returns the repository matching DB_DRIVER.
func (c *Container) CipherKeyRepository() (cipherUseCase.CipherKeyRepository, error) {
	c.cipherKeyRepositoryInit.Do(func() {
		repo, err := c.initCipherKeyRepository()
		c.store("cipherKeyRepository", err, func() { c.cipherKeyRepository = repo })
	})
	if err := c.initError("cipherKeyRepository"); err != nil {
		return nil, err
	}
	return c.cipherKeyRepository, nil
}

// PrimeUseCase returns the policy-bound prime use case.
func (c *Container) PrimeUseCase() (cipherUseCase.PrimeUseCase, error) {
	c.primeUseCaseInit.Do(func() {
		uc, err := c.initPrimeUseCase()
		c.store("primeUseCase", err, func() { c.primeUseCase = uc })
	})
	if err := c.initError("primeUseCase"); err != nil {
		return nil, err
	}
	return c.primeUseCase, nil
}

// CipherKeyUseCase returns the cipher key use case.
func (c *Container) CipherKeyUseCase() (cipherUseCase.CipherKeyUseCase, error) {
	c.cipherKeyUseCaseInit.Do(func() {
		uc, err := c.initCipherKeyUseCase()
		c.store("cipherKeyUseCase", err, func() { c.cipherKeyUseCase = uc })
	})
	if err := c.initError("cipherKeyUseCase"); err != nil {
		return nil, err
	}
	return c.cipherKeyUseCase, nil
}

// CipherKeyHandler returns the HTTP handler for cipher key management.
func (c *Container) CipherKeyHandler() (*cipherHTTP.CipherKeyHandler, error) {
	c.cipherKeyHandlerInit.Do(func() {
		h, err := c.initCipherKeyHandler()
		c.store("cipherKeyHandler", err, func() { c.cipherKeyHandler = h })
	})
	if err := c.initError("cipherKeyHandler"); err != nil {
		return nil, err
	}
	return c.cipherKeyHandler, nil
}

// CryptoHandler returns the HTTP handler for encrypt and decrypt.
func (c *Container) CryptoHandler() (*cipherHTTP.CryptoHandler, error) {
	c.cryptoHandlerInit.Do(func() {
		h, err := c.initCryptoHandler()
		c.store("cryptoHandler", err, func() { c.cryptoHandler = h })
	})
	if err := c.initError("cryptoHandler"); err != nil {
		return nil, err
	}
	return c.cryptoHandler, nil
}

// PrimeHandler returns the HTTP handler for prime generation and checks.
func (c *Container) PrimeHandler() (*cipherHTTP.PrimeHandler, error) {
	c.primeHandlerInit.Do(func() {
		h, err := c.initPrimeHandler()
		c.store("primeHandler", err, func() { c.primeHandler = h })
	})
	if err := c.initError("primeHandler"); err != nil {
		return nil, err
	}
	return c.primeHandler, nil
}

func (c *Container) initMasterKeyChain() (*cipherDomain.MasterKeyChain, error) {
	ctx := context.Background()

	var keeper cipherDomain.KMSKeeper
	if c.config.UseKMS() {
		k, err := c.KMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = k.Close()
		}()
		keeper = k
		c.Logger().Info("unwrapping master keys through kms", "kms_provider", c.config.KMSProvider)
	}

	mkc, err := cipherDomain.LoadMasterKeyChain(ctx, c.config.MasterKeys, c.config.ActiveMasterKeyID, keeper)
	if err != nil {
		return nil, fmt.Errorf("failed to load master key chain: %w", err)
	}
	return mkc, nil
}

func (c *Container) initCipherKeyRepository() (cipherUseCase.CipherKeyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for cipher key repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return cipherRepository.NewPostgreSQLCipherKeyRepository(db), nil
	case database.DriverMySQL:
		return cipherRepository.NewMySQLCipherKeyRepository(db), nil
	default:
		return nil, fmt.Errorf("%w: %s", database.ErrUnsupportedDriver, c.config.DBDriver)
	}
}

func (c *Container) primePolicy() cipherUseCase.PrimePolicy {
	return cipherUseCase.PrimePolicy{
		DefaultBits: c.config.CipherDefaultPrimeBits,
		MaxBits:     c.config.CipherMaxPrimeBits,
		Timeout:     c.config.CipherPrimeTimeout,
	}
}

func (c *Container) initPrimeUseCase() (cipherUseCase.PrimeUseCase, error) {
	baseUseCase := cipherUseCase.NewPrimeUseCase(c.PrimeOracle(), c.primePolicy())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for prime use case: %w", err)
		}
		return cipherUseCase.NewPrimeUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initCipherKeyUseCase() (cipherUseCase.CipherKeyUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for cipher key use case: %w", err)
	}

	repo, err := c.CipherKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher key repository for cipher key use case: %w", err)
	}

	masterKeyChain, err := c.MasterKeyChain()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key chain for cipher key use case: %w", err)
	}

	// Unwrapped so key creation is not also recorded as prime_generate.
	primes := cipherUseCase.NewPrimeUseCase(c.PrimeOracle(), c.primePolicy())

	baseUseCase := cipherUseCase.NewCipherKeyUseCase(txManager, repo, primes, c.Envelope(), masterKeyChain)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for cipher key use case: %w", err)
		}
		return cipherUseCase.NewCipherKeyUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initCipherKeyHandler() (*cipherHTTP.CipherKeyHandler, error) {
	uc, err := c.CipherKeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher key use case for cipher key handler: %w", err)
	}
	return cipherHTTP.NewCipherKeyHandler(uc, c.config.CipherMaxPrimeBits, c.Logger()), nil
}

func (c *Container) initCryptoHandler() (*cipherHTTP.CryptoHandler, error) {
	uc, err := c.CipherKeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher key use case for crypto handler: %w", err)
	}
	return cipherHTTP.NewCryptoHandler(uc, c.Logger()), nil
}

func (c *Container) initPrimeHandler() (*cipherHTTP.PrimeHandler, error) {
	uc, err := c.PrimeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get prime use case for prime handler: %w", err)
	}
	return cipherHTTP.NewPrimeHandler(uc, c.config.CipherMaxPrimeBits, c.Logger()), nil
}
