package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
	"github.com/allisson/reptend/internal/cipher/http/dto"
	cipherUseCase "github.com/allisson/reptend/internal/cipher/usecase"
	"github.com/allisson/reptend/internal/httputil"
	customValidation "github.com/allisson/reptend/internal/validation"
)

// CryptoHandler encrypts and decrypts with named cipher keys.
type CryptoHandler struct {
	cipherKeyUseCase cipherUseCase.CipherKeyUseCase
	logger           *slog.Logger
}

func NewCryptoHandler(cipherKeyUseCase cipherUseCase.CipherKeyUseCase, logger *slog.Logger) *CryptoHandler {
	return &CryptoHandler{
		cipherKeyUseCase: cipherKeyUseCase,
		logger:           logger,
	}
}

// EncryptHandler seals base64 plaintext with the latest key version.
// POST /v1/cipher/keys/:name/encrypt - 200 with "version:base64" ciphertext.
func (h *CryptoHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext, err := base64.StdEncoding.DecodeString(req.Plaintext)
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid base64 plaintext: %w", err), h.logger)
		return
	}
	defer cipherDomain.Zero(plaintext)

	encryptedBlob, err := h.cipherKeyUseCase.Encrypt(c.Request.Context(), c.Param("name"), plaintext)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncryptResponse{
		Ciphertext: encryptedBlob.String(),
		Version:    encryptedBlob.Version,
	})
}

// DecryptHandler opens a ciphertext with the key version it names.
// POST /v1/cipher/keys/:name/decrypt - 422 when the MAC does not verify.
func (h *CryptoHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	decryptedBlob, err := h.cipherKeyUseCase.Decrypt(c.Request.Context(), c.Param("name"), []byte(req.Ciphertext))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer cipherDomain.Zero(decryptedBlob.Plaintext)

	c.JSON(http.StatusOK, dto.MapDecryptResponse(decryptedBlob.Plaintext, decryptedBlob.Version))
}
