package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/service"
)

// SubmitHandler serves the public, unauthenticated invoice submission endpoint.
// Responses never reveal whether a project code exists under another account.
type SubmitHandler struct {
	autoMatchService *service.AutoMatchService
	logger           *zap.Logger
}

func NewSubmitHandler(autoMatchService *service.AutoMatchService, logger *zap.Logger) *SubmitHandler {
	return &SubmitHandler{
		autoMatchService: autoMatchService,
		logger:           logger,
	}
}

// Submit godoc
// @Summary Submit external invoice
// @Description Submit an invoice identified only by payee email and project code. A matched invoice is recorded in WAITING_APPROVAL and, when the payee is hinted on exactly one candidate, attached to that budget line.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param request body domain.SubmitInvoiceRequest true "Submission data"
// @Success 201 {object} domain.SubmissionResultDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Unknown email or project code"
// @Failure 429 {object} domain.APIError "Rate limit exceeded"
// @Failure 500 {object} domain.APIError
// @Router /submit [post]
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.autoMatchService.Submit(r.Context(), req)
	if err != nil {
		h.handleSubmitError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// handleSubmitError maps match failures to responses safe to show an external
// submitter
func (h *SubmitHandler) handleSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailNotFound):
		respondWithError(w, http.StatusNotFound, "No payee is registered for this email address")
	case errors.Is(err, service.ErrProjectCodeMismatch):
		respondWithError(w, http.StatusNotFound, "Project code not recognized")
	default:
		h.logger.Error("submit handler error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
