// Package http exposes cipher key management, payload encryption and the prime
// oracle over gin.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/reptend/internal/cipher/http/dto"
	cipherUseCase "github.com/allisson/reptend/internal/cipher/usecase"
	"github.com/allisson/reptend/internal/httputil"
	customValidation "github.com/allisson/reptend/internal/validation"
)

// CipherKeyHandler serves the /v1/cipher/keys resource.
type CipherKeyHandler struct {
	cipherKeyUseCase cipherUseCase.CipherKeyUseCase
	maxPrimeBits     int
	logger           *slog.Logger
}

func NewCipherKeyHandler(
	cipherKeyUseCase cipherUseCase.CipherKeyUseCase,
	maxPrimeBits int,
	logger *slog.Logger,
) *CipherKeyHandler {
	return &CipherKeyHandler{
		cipherKeyUseCase: cipherKeyUseCase,
		maxPrimeBits:     maxPrimeBits,
		logger:           logger,
	}
}

// CreateHandler creates version 1 of a cipher key.
// POST /v1/cipher/keys - 201 Created, 409 if the name is taken.
func (h *CipherKeyHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateCipherKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.maxPrimeBits); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	cipherKey, err := h.cipherKeyUseCase.Create(c.Request.Context(), req.Name, req.PrimeBits)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCipherKeyToResponse(cipherKey))
}

// GetHandler returns the latest version of a cipher key.
// GET /v1/cipher/keys/:name
func (h *CipherKeyHandler) GetHandler(c *gin.Context) {
	cipherKey, err := h.cipherKeyUseCase.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapCipherKeyToResponse(cipherKey))
}

// ListHandler pages through every live key version.
// GET /v1/cipher/keys?offset=0&limit=50
func (h *CipherKeyHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	cipherKeys, err := h.cipherKeyUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapCipherKeysToListResponse(cipherKeys))
}

// RotateHandler adds a new version of a cipher key, creating it if needed.
// POST /v1/cipher/keys/:name/rotate - 201 Created.
func (h *CipherKeyHandler) RotateHandler(c *gin.Context) {
	var req dto.RotateCipherKeyRequest
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

	cipherKey, err := h.cipherKeyUseCase.Rotate(c.Request.Context(), c.Param("name"), req.PrimeBits)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, dto.MapCipherKeyToResponse(cipherKey))
}

// DeleteHandler soft-deletes one cipher key version by ID.
// DELETE /v1/cipher/keys/:id - 204 No Content.
func (h *CipherKeyHandler) DeleteHandler(c *gin.Context) {
	cipherKeyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid cipher key ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.cipherKeyUseCase.Delete(c.Request.Context(), cipherKeyID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.Status(http.StatusNoContent)
}
