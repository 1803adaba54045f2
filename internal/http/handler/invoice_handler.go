package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slateworks/budget-api/internal/auth"
	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/service"
)

// maxAttachmentSize limits attachment uploads to 25 MB
const maxAttachmentSize = 25 << 20

type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewInvoiceHandler(invoiceService *service.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// List godoc
// @Summary List invoices
// @Description Get every invoice on the authenticated user's projects
// @Tags Invoices
// @Accept json
// @Produce json
// @Success 200 {array} domain.InvoiceDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	invoices, err := h.invoiceService.List(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("failed to list invoices", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list invoices")
		return
	}

	respondJSON(w, http.StatusOK, invoices)
}

// ListByProject godoc
// @Summary List project invoices
// @Description Get all invoices assigned to a project
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {array} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/invoices [get]
func (h *InvoiceHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID: must be a valid UUID")
		return
	}

	invoices, err := h.invoiceService.ListByProject(r.Context(), user.UserID, projectID)
	if err != nil {
		h.handleInvoiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoices)
}

// Create godoc
// @Summary Create invoice
// @Description Record a new invoice. The amount is fixed at creation and never recalculated.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body domain.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError "Budget line belongs to another project"
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	var req domain.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.Create(r.Context(), user.UserID, req)
	if err != nil {
		h.handleInvoiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, invoice)
}

// GetByID godoc
// @Summary Get invoice by ID
// @Description Get an invoice with its related project and payee names
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID: must be a valid UUID")
		return
	}

	invoice, err := h.invoiceService.GetByID(r.Context(), user.UserID, id)
	if err != nil {
		h.handleInvoiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// UpdateStatus godoc
// @Summary Update invoice status
// @Description Move an invoice to a new status. The affected line and project aggregates are fully re-derived.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Param request body domain.UpdateInvoiceStatusRequest true "Status data"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /invoices/{id}/status [put]
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID: must be a valid UUID")
		return
	}

	var req domain.UpdateInvoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(r.Context(), user.UserID, id, req.Status)
	if err != nil {
		h.logger.Error("failed to update invoice status", zap.Error(err), zap.String("invoice_id", id.String()))
		h.handleInvoiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// Reassign godoc
// @Summary Reassign invoice
// @Description Move an invoice to a different project and/or budget line. Null values detach. Both the previous and new targets are re-derived.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Param request body domain.ReassignInvoiceRequest true "New assignment"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError "Budget line belongs to another project"
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /invoices/{id}/assign [put]
func (h *InvoiceHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID: must be a valid UUID")
		return
	}

	var req domain.ReassignInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	invoice, err := h.invoiceService.Reassign(r.Context(), user.UserID, id, req)
	if err != nil {
		h.logger.Error("failed to reassign invoice", zap.Error(err), zap.String("invoice_id", id.String()))
		h.handleInvoiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// Delete godoc
// @Summary Delete invoice
// @Description Delete an invoice and re-derive the aggregates it contributed to
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID: must be a valid UUID")
		return
	}

	if err := h.invoiceService.Delete(r.Context(), user.UserID, id); err != nil {
		h.logger.Error("failed to delete invoice", zap.Error(err), zap.String("invoice_id", id.String()))
		h.handleInvoiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadAttachment godoc
// @Summary Upload invoice attachment
// @Description Upload an attachment file for an invoice. An existing attachment is replaced.
// @Tags Invoices
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Param file formData file true "Attachment file"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /invoices/{id}/attachment [post]
func (h *InvoiceHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID: must be a valid UUID")
		return
	}

	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	invoice, err := h.invoiceService.UploadAttachment(r.Context(), user.UserID, id, header.Filename, contentType, file)
	if err != nil {
		h.logger.Error("failed to upload attachment", zap.Error(err), zap.String("invoice_id", id.String()))
		h.handleInvoiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// DownloadAttachment godoc
// @Summary Download invoice attachment
// @Description Stream an invoice's attachment file
// @Tags Invoices
// @Produce application/octet-stream
// @Param id path string true "Invoice ID" format(uuid)
// @Success 200 {file} binary
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Invoice not found or has no attachment"
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /invoices/{id}/attachment [get]
func (h *InvoiceHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invoice ID: must be a valid UUID")
		return
	}

	reader, err := h.invoiceService.DownloadAttachment(r.Context(), user.UserID, id)
	if err != nil {
		h.handleInvoiceError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("failed to stream attachment", zap.Error(err), zap.String("invoice_id", id.String()))
	}
}

// handleInvoiceError maps service errors to HTTP status codes
func (h *InvoiceHandler) handleInvoiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrLineProjectMismatch):
		respondWithError(w, http.StatusBadRequest, "Budget line does not belong to the invoice's project")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		h.logger.Error("invoice handler error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
