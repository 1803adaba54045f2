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

type BudgetLineHandler struct {
	lineService *service.BudgetLineService
	logger      *zap.Logger
}

func NewBudgetLineHandler(lineService *service.BudgetLineService, logger *zap.Logger) *BudgetLineHandler {
	return &BudgetLineHandler{
		lineService: lineService,
		logger:      logger,
	}
}

// Create godoc
// @Summary Create budget line
// @Description Add a budget line to a project. The line number continues the project's sequence and the estimate is derived before the first write.
// @Tags Budget Lines
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.CreateBudgetLineRequest true "Budget line data"
// @Success 201 {object} domain.BudgetLineDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/lines [post]
func (h *BudgetLineHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	var req domain.CreateBudgetLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	line, err := h.lineService.Create(r.Context(), user.UserID, projectID, req)
	if err != nil {
		h.handleLineError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, line)
}

// ListByProject godoc
// @Summary List budget lines
// @Description Get a project's budget lines in line order
// @Tags Budget Lines
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {array} domain.BudgetLineDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/lines [get]
func (h *BudgetLineHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	lines, err := h.lineService.ListByProject(r.Context(), user.UserID, projectID)
	if err != nil {
		h.handleLineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lines)
}

// GetByID godoc
// @Summary Get budget line by ID
// @Description Get a single budget line
// @Tags Budget Lines
// @Accept json
// @Produce json
// @Param id path string true "Budget line ID" format(uuid)
// @Success 200 {object} domain.BudgetLineDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /lines/{id} [get]
func (h *BudgetLineHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid budget line ID: must be a valid UUID")
		return
	}

	line, err := h.lineService.GetByID(r.Context(), user.UserID, id)
	if err != nil {
		h.handleLineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, line)
}

// Update godoc
// @Summary Update budget line
// @Description Update a budget line's fields. The estimate is re-derived from the raw numeric inputs through the project's ruleset and fringe assignment.
// @Tags Budget Lines
// @Accept json
// @Produce json
// @Param id path string true "Budget line ID" format(uuid)
// @Param request body domain.UpdateBudgetLineRequest true "Budget line data"
// @Success 200 {object} domain.BudgetLineDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /lines/{id} [put]
func (h *BudgetLineHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid budget line ID: must be a valid UUID")
		return
	}

	var req domain.UpdateBudgetLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	line, err := h.lineService.Update(r.Context(), user.UserID, id, req)
	if err != nil {
		h.logger.Error("failed to update budget line", zap.Error(err), zap.String("line_id", id.String()))
		h.handleLineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, line)
}

// AssignFringe godoc
// @Summary Assign fringe rule
// @Description Assign or clear a budget line's fringe rule. A null fringeRuleId resets the estimate to the unadjusted ruleset output.
// @Tags Budget Lines
// @Accept json
// @Produce json
// @Param id path string true "Budget line ID" format(uuid)
// @Param request body domain.AssignFringeRequest true "Fringe assignment"
// @Success 200 {object} domain.BudgetLineDTO
// @Failure 400 {object} domain.APIError "Fringe rule belongs to another project"
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /lines/{id}/fringe [put]
func (h *BudgetLineHandler) AssignFringe(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid budget line ID: must be a valid UUID")
		return
	}

	var req domain.AssignFringeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	line, err := h.lineService.AssignFringe(r.Context(), user.UserID, id, req.FringeRuleID)
	if err != nil {
		h.handleLineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, line)
}

// Reorder godoc
// @Summary Reorder budget lines
// @Description Renumber a project's lines to the given order. Every ID must belong to the project.
// @Tags Budget Lines
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.ReorderLinesRequest true "Ordered line IDs"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/lines/reorder [put]
func (h *BudgetLineHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	var req domain.ReorderLinesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.lineService.Reorder(r.Context(), user.UserID, projectID, req.LineIDs); err != nil {
		h.handleLineError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete budget line
// @Description Delete a budget line and re-derive the project totals
// @Tags Budget Lines
// @Accept json
// @Produce json
// @Param id path string true "Budget line ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /lines/{id} [delete]
func (h *BudgetLineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid budget line ID: must be a valid UUID")
		return
	}

	if err := h.lineService.Delete(r.Context(), user.UserID, id); err != nil {
		h.logger.Error("failed to delete budget line", zap.Error(err), zap.String("line_id", id.String()))
		h.handleLineError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleLineError maps service errors to HTTP status codes
func (h *BudgetLineHandler) handleLineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		h.logger.Error("budget line handler error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
