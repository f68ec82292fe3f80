// Package http provides HTTP handlers for one-time secret operations.
package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/onetime/internal/httputil"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
	"github.com/allisson/onetime/internal/secrets/http/dto"
	secretsUseCase "github.com/allisson/onetime/internal/secrets/usecase"
	customValidation "github.com/allisson/onetime/internal/validation"
)

// SecretHandler handles HTTP requests for one-time secret operations.
type SecretHandler struct {
	secretUseCase secretsUseCase.SecretUseCase
	logger        *slog.Logger
}

// NewSecretHandler creates a new secret handler with required dependencies.
func NewSecretHandler(secretUseCase secretsUseCase.SecretUseCase, logger *slog.Logger) *SecretHandler {
	return &SecretHandler{
		secretUseCase: secretUseCase,
		logger:        logger,
	}
}

// clientInfo captures the caller metadata recorded in the event trail.
func clientInfo(c *gin.Context) secretsUseCase.ClientInfo {
	return secretsUseCase.ClientInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// parseSecretID parses the id path parameter. A malformed id maps to the same
// not-found error as an unknown one, so the URL shape reveals nothing.
func parseSecretID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, secretsDomain.ErrSecretNotFound
	}
	return id, nil
}

// CreateHandler stores a new secret.
// POST /api/secrets
// Returns 201 Created with the share id.
func (h *SecretHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := secretsUseCase.CreateSecretInput{
		Secret:     req.Secret,
		Passphrase: req.Passphrase,
		TTLSeconds: req.TTLSeconds,
	}

	id, err := h.secretUseCase.Create(c.Request.Context(), input, clientInfo(c))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateSecretResponse{ID: id.String()})
}

// ReadHandler returns the plaintext exactly once and consumes the secret.
// GET /api/secrets/:id
// Returns 200 OK with the plaintext, or 404 for any unreachable secret.
func (h *SecretHandler) ReadHandler(c *gin.Context) {
	id, err := parseSecretID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	plaintext, err := h.secretUseCase.ReadAndBurn(c.Request.Context(), id, clientInfo(c))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ReadSecretResponse{Secret: plaintext})
}

// DeleteHandler removes a live secret, checking the passphrase when one gates
// it. The request body is optional.
// DELETE /api/secrets/:id
// Returns 204 No Content on success, 403 on a wrong or missing passphrase.
func (h *SecretHandler) DeleteHandler(c *gin.Context) {
	id, err := parseSecretID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.DeleteSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.secretUseCase.Delete(c.Request.Context(), id, req.Passphrase, clientInfo(c)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
