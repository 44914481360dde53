// Package http provides HTTP handlers for encrypted transaction records.
// Payloads are sealed with envelope encryption on write and opened on demand.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
	"github.com/allisson/txvault/internal/httputil"
	recordsDomain "github.com/allisson/txvault/internal/records/domain"
	"github.com/allisson/txvault/internal/records/http/dto"
	recordsUseCase "github.com/allisson/txvault/internal/records/usecase"
	customValidation "github.com/allisson/txvault/internal/validation"
)

// RecordHandler handles HTTP requests for record operations.
type RecordHandler struct {
	recordUseCase recordsUseCase.RecordUseCase
	logger        *slog.Logger
}

// NewRecordHandler creates a new record handler with required dependencies.
func NewRecordHandler(recordUseCase recordsUseCase.RecordUseCase, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{
		recordUseCase: recordUseCase,
		logger:        logger,
	}
}

// EncryptHandler seals a payload for a party and stores the resulting record.
// POST /v1/tx/encrypt
// Returns 201 Created with the stored envelope fields.
func (h *RecordHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRecordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.recordUseCase.Encrypt(c.Request.Context(), req.PartyID, req.Payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecordToResponse(record))
}

// GetHandler returns a stored record without decrypting it.
// GET /v1/tx/:id
func (h *RecordHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	record, err := h.recordUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}

// DecryptHandler opens a stored record and returns its payload.
// POST /v1/tx/:id/decrypt
// Returns 400 with a uniform body on any integrity failure. SECURITY: the
// plaintext is zeroed after the response is written.
func (h *RecordHandler) DecryptHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	decrypted, err := h.recordUseCase.Decrypt(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	defer cryptoDomain.Zero(decrypted.Payload)

	c.JSON(http.StatusOK, dto.MapDecryptedRecordToResponse(decrypted))
}

// ListHandler retrieves records with pagination support.
// GET /v1/tx?offset=0&limit=50
func (h *RecordHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	records, err := h.recordUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordsToListResponse(records))
}

// parseID reads the :id path parameter. An id that is not a UUID cannot name a
// stored record, so it is answered as not found.
func (h *RecordHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, recordsDomain.ErrRecordNotFound, h.logger)
		return uuid.Nil, false
	}
	return id, true
}
