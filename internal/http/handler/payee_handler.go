package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slateworks/budget-api/internal/auth"
	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/service"
)

type PayeeHandler struct {
	payeeService  *service.PayeeService
	importService *service.PayeeImportService
	logger        *zap.Logger
}

func NewPayeeHandler(payeeService *service.PayeeService, importService *service.PayeeImportService, logger *zap.Logger) *PayeeHandler {
	return &PayeeHandler{
		payeeService:  payeeService,
		importService: importService,
		logger:        logger,
	}
}

// List godoc
// @Summary List payees
// @Description Get all payees owned by the authenticated user
// @Tags Payees
// @Accept json
// @Produce json
// @Success 200 {array} domain.PayeeDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /payees [get]
func (h *PayeeHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	payees, err := h.payeeService.List(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("failed to list payees", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list payees")
		return
	}

	respondJSON(w, http.StatusOK, payees)
}

// Create godoc
// @Summary Create payee
// @Description Create a new payee. The email is the matching key for external invoice submissions.
// @Tags Payees
// @Accept json
// @Produce json
// @Param request body domain.CreatePayeeRequest true "Payee data"
// @Success 201 {object} domain.PayeeDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /payees [post]
func (h *PayeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	var req domain.CreatePayeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	payee, err := h.payeeService.Create(r.Context(), user.UserID, req)
	if err != nil {
		h.handlePayeeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, payee)
}

// GetByID godoc
// @Summary Get payee by ID
// @Description Get a single payee
// @Tags Payees
// @Accept json
// @Produce json
// @Param id path string true "Payee ID" format(uuid)
// @Success 200 {object} domain.PayeeDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /payees/{id} [get]
func (h *PayeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid payee ID: must be a valid UUID")
		return
	}

	payee, err := h.payeeService.GetByID(r.Context(), user.UserID, id)
	if err != nil {
		h.handlePayeeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payee)
}

// Update godoc
// @Summary Update payee
// @Description Update a payee's details
// @Tags Payees
// @Accept json
// @Produce json
// @Param id path string true "Payee ID" format(uuid)
// @Param request body domain.UpdatePayeeRequest true "Payee data"
// @Success 200 {object} domain.PayeeDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /payees/{id} [put]
func (h *PayeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid payee ID: must be a valid UUID")
		return
	}

	var req domain.UpdatePayeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	payee, err := h.payeeService.Update(r.Context(), user.UserID, id, req)
	if err != nil {
		h.logger.Error("failed to update payee", zap.Error(err), zap.String("payee_id", id.String()))
		h.handlePayeeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payee)
}

// Delete godoc
// @Summary Delete payee
// @Description Delete a payee
// @Tags Payees
// @Accept json
// @Produce json
// @Param id path string true "Payee ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /payees/{id} [delete]
func (h *PayeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid payee ID: must be a valid UUID")
		return
	}

	if err := h.payeeService.Delete(r.Context(), user.UserID, id); err != nil {
		h.logger.Error("failed to delete payee", zap.Error(err), zap.String("payee_id", id.String()))
		h.handlePayeeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Import godoc
// @Summary Import payees from accounting system
// @Description Pull vendor contacts from the connected accounting system and create any payee the user does not have yet. Email is the dedupe key.
// @Tags Payees
// @Accept json
// @Produce json
// @Success 200 {object} map[string]int "Number of payees imported"
// @Failure 401 {object} domain.APIError
// @Failure 503 {object} domain.APIError "Accounting system integration not configured"
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /payees/import [post]
func (h *PayeeHandler) Import(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	if !h.importService.Enabled() {
		respondWithError(w, http.StatusServiceUnavailable, "Accounting system integration is not configured")
		return
	}

	imported, err := h.importService.ImportForOwner(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("failed to import payees", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to import payees")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"imported": imported})
}

// handlePayeeError maps service errors to HTTP status codes
func (h *PayeeHandler) handlePayeeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Payee not found")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		h.logger.Error("payee handler error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
