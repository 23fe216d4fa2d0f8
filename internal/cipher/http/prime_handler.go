package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/reptend/internal/cipher/http/dto"
	cipherUseCase "github.com/allisson/reptend/internal/cipher/usecase"
	"github.com/allisson/reptend/internal/httputil"
	customValidation "github.com/allisson/reptend/internal/validation"
)

// PrimeHandler exposes the prime oracle.
type PrimeHandler struct {
	primeUseCase cipherUseCase.PrimeUseCase
	maxPrimeBits int
	logger       *slog.Logger
}

func NewPrimeHandler(primeUseCase cipherUseCase.PrimeUseCase, maxPrimeBits int, logger *slog.Logger) *PrimeHandler {
	return &PrimeHandler{
		primeUseCase: primeUseCase,
		maxPrimeBits: maxPrimeBits,
		logger:       logger,
	}
}

// GenerateHandler returns a random safe full reptend prime.
// POST /v1/primes/generate
func (h *PrimeHandler) GenerateHandler(c *gin.Context) {
	var req dto.GeneratePrimeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
	}

	if err := req.Validate(h.maxPrimeBits); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	p, err := h.primeUseCase.Generate(c.Request.Context(), req.Bits)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapPrimeResponse(p, true))
}

// CheckHandler reports whether a decimal candidate is a full reptend prime.
// POST /v1/primes/check - 504 when factoring p-1 exceeds CIPHER_PRIME_TIMEOUT.
func (h *PrimeHandler) CheckHandler(c *gin.Context) {
	var req dto.CheckPrimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.maxPrimeBits); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	p := req.Value()
	ok, err := h.primeUseCase.Check(c.Request.Context(), p)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapPrimeResponse(p, ok))
}
