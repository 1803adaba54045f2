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

type FringeRuleHandler struct {
	fringeService *service.FringeRuleService
	logger        *zap.Logger
}

func NewFringeRuleHandler(fringeService *service.FringeRuleService, logger *zap.Logger) *FringeRuleHandler {
	return &FringeRuleHandler{
		fringeService: fringeService,
		logger:        logger,
	}
}

// Create godoc
// @Summary Create fringe rule
// @Description Add a fringe rule to a project
// @Tags Fringe Rules
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param request body domain.CreateFringeRuleRequest true "Fringe rule data"
// @Success 201 {object} domain.FringeRuleDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/fringes [post]
func (h *FringeRuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	var req domain.CreateFringeRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	rule, err := h.fringeService.Create(r.Context(), user.UserID, projectID, req)
	if err != nil {
		h.handleFringeError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, rule)
}

// ListByProject godoc
// @Summary List fringe rules
// @Description Get a project's fringe rules
// @Tags Fringe Rules
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {array} domain.FringeRuleDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/fringes [get]
func (h *FringeRuleHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	rules, err := h.fringeService.ListByProject(r.Context(), user.UserID, projectID)
	if err != nil {
		h.handleFringeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rules)
}

// Update godoc
// @Summary Update fringe rule
// @Description Update a fringe rule's name or percentage. A percentage change recomputes every line using the rule from its raw inputs.
// @Tags Fringe Rules
// @Accept json
// @Produce json
// @Param id path string true "Fringe rule ID" format(uuid)
// @Param request body domain.UpdateFringeRuleRequest true "Fringe rule data"
// @Success 200 {object} domain.FringeRuleDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /fringes/{id} [put]
func (h *FringeRuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid fringe rule ID: must be a valid UUID")
		return
	}

	var req domain.UpdateFringeRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	rule, err := h.fringeService.Update(r.Context(), user.UserID, id, req)
	if err != nil {
		h.logger.Error("failed to update fringe rule", zap.Error(err), zap.String("fringe_rule_id", id.String()))
		h.handleFringeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rule)
}

// Delete godoc
// @Summary Delete fringe rule
// @Description Delete a fringe rule. Lines using the rule fall back to their unadjusted ruleset estimate.
// @Tags Fringe Rules
// @Accept json
// @Produce json
// @Param id path string true "Fringe rule ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /fringes/{id} [delete]
func (h *FringeRuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid fringe rule ID: must be a valid UUID")
		return
	}

	if err := h.fringeService.Delete(r.Context(), user.UserID, id); err != nil {
		h.logger.Error("failed to delete fringe rule", zap.Error(err), zap.String("fringe_rule_id", id.String()))
		h.handleFringeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleFringeError maps service errors to HTTP status codes
func (h *FringeRuleHandler) handleFringeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		h.logger.Error("fringe rule handler error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
