package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/mapper"
	"github.com/slateworks/budget-api/internal/repository"
	"github.com/slateworks/budget-api/internal/storage"
)

// InvoiceService handles business logic for invoices
type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	projectRepo *repository.ProjectRepository
	lineRepo    *repository.BudgetLineRepository
	payeeRepo   *repository.PayeeRepository
	reconciler  *ReconcileService
	files       storage.Storage
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService instance
func NewInvoiceService(
	invoiceRepo *repository.InvoiceRepository,
	projectRepo *repository.ProjectRepository,
	lineRepo *repository.BudgetLineRepository,
	payeeRepo *repository.PayeeRepository,
	reconciler *ReconcileService,
	files storage.Storage,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		projectRepo: projectRepo,
		lineRepo:    lineRepo,
		payeeRepo:   payeeRepo,
		reconciler:  reconciler,
		files:       files,
		logger:      logger,
	}
}

// Create records a new invoice. Amount is fixed here and never recalculated.
// When the initial status already counts toward spent, the aggregates are
// re-derived before returning.
func (s *InvoiceService) Create(ctx context.Context, ownerID uuid.UUID, req domain.CreateInvoiceRequest) (*domain.InvoiceDTO, error) {
	status := req.Status
	if status == "" {
		status = domain.InvoiceStatusWaitingApproval
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown invoice status %q: %w", status, ErrInvalidInput)
	}

	if req.ProjectID != nil {
		if _, err := s.getOwnedProject(ctx, ownerID, *req.ProjectID); err != nil {
			return nil, err
		}
	}
	if err := s.validateLineAssignment(ctx, req.ProjectID, req.BudgetLineID); err != nil {
		return nil, err
	}
	if req.PayeeID != nil {
		if _, err := s.getOwnedPayee(ctx, ownerID, *req.PayeeID); err != nil {
			return nil, err
		}
	}

	invoice := &domain.Invoice{
		ProjectID:    req.ProjectID,
		BudgetLineID: req.BudgetLineID,
		PayeeID:      req.PayeeID,
		Amount:       req.Amount,
		Status:       status,
		Reference:    req.Reference,
		Notes:        req.Notes,
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		s.logger.Error("Failed to create invoice", zap.Error(err))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	if status.CountsTowardSpent() {
		if err := s.reconciler.OnInvoiceChanged(ctx, invoice.ProjectID, invoice.BudgetLineID); err != nil {
			return nil, fmt.Errorf("failed to recompute aggregates: %w", err)
		}
	}

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

// GetByID retrieves an invoice with its related names resolved
func (s *InvoiceService) GetByID(ctx context.Context, ownerID, invoiceID uuid.UUID) (*domain.InvoiceDTO, error) {
	invoice, err := s.getOwned(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	invoice, err = s.invoiceRepo.GetByIDWithRelations(ctx, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

// ListByProject returns a project's invoices
func (s *InvoiceService) ListByProject(ctx context.Context, ownerID, projectID uuid.UUID) ([]domain.InvoiceDTO, error) {
	if _, err := s.getOwnedProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("Failed to list invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	dtos := make([]domain.InvoiceDTO, len(invoices))
	for i := range invoices {
		dtos[i] = mapper.ToInvoiceDTO(&invoices[i])
	}
	return dtos, nil
}

// List returns every invoice on the owner's projects
func (s *InvoiceService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.InvoiceDTO, error) {
	invoices, err := s.invoiceRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to list invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	dtos := make([]domain.InvoiceDTO, len(invoices))
	for i := range invoices {
		dtos[i] = mapper.ToInvoiceDTO(&invoices[i])
	}
	return dtos, nil
}

// UpdateStatus moves an invoice to a new status and re-derives the aggregates.
// Invoices transition freely between the five statuses; the recompute is a
// full re-derivation, so it runs on every transition rather than only when the
// counting set changes.
func (s *InvoiceService) UpdateStatus(ctx context.Context, ownerID, invoiceID uuid.UUID, status domain.InvoiceStatus) (*domain.InvoiceDTO, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown invoice status %q: %w", status, ErrInvalidInput)
	}
	invoice, err := s.getOwned(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	oldStatus := invoice.Status
	invoice.Status = status
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		s.logger.Error("Failed to update invoice status", zap.Error(err))
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	if err := s.reconciler.OnInvoiceChanged(ctx, invoice.ProjectID, invoice.BudgetLineID); err != nil {
		return nil, fmt.Errorf("failed to recompute aggregates: %w", err)
	}

	s.logger.Info("Invoice status changed",
		zap.String("invoiceId", invoice.ID.String()),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(status)))

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

// Reassign moves an invoice to a different project and/or budget line. The
// previous and new targets are each fully re-derived; the order does not
// matter.
func (s *InvoiceService) Reassign(ctx context.Context, ownerID, invoiceID uuid.UUID, req domain.ReassignInvoiceRequest) (*domain.InvoiceDTO, error) {
	invoice, err := s.getOwned(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if req.ProjectID != nil {
		if _, err := s.getOwnedProject(ctx, ownerID, *req.ProjectID); err != nil {
			return nil, err
		}
	}
	if err := s.validateLineAssignment(ctx, req.ProjectID, req.BudgetLineID); err != nil {
		return nil, err
	}

	oldProjectID := invoice.ProjectID
	oldLineID := invoice.BudgetLineID
	invoice.ProjectID = req.ProjectID
	invoice.BudgetLineID = req.BudgetLineID

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		s.logger.Error("Failed to reassign invoice", zap.Error(err))
		return nil, fmt.Errorf("failed to reassign invoice: %w", err)
	}

	if err := s.reconciler.OnInvoiceReassigned(ctx, oldProjectID, oldLineID, invoice.ProjectID, invoice.BudgetLineID); err != nil {
		return nil, fmt.Errorf("failed to recompute aggregates: %w", err)
	}

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

// Delete removes an invoice and re-derives the aggregates it contributed to
func (s *InvoiceService) Delete(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	invoice, err := s.getOwned(ctx, ownerID, invoiceID)
	if err != nil {
		return err
	}
	if err := s.invoiceRepo.Delete(ctx, invoice.ID); err != nil {
		s.logger.Error("Failed to delete invoice", zap.Error(err))
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if invoice.AttachmentPath != "" {
		if err := s.files.Delete(ctx, invoice.AttachmentPath); err != nil {
			s.logger.Warn("Failed to delete invoice attachment", zap.Error(err))
		}
	}
	if err := s.reconciler.OnInvoiceChanged(ctx, invoice.ProjectID, invoice.BudgetLineID); err != nil {
		return fmt.Errorf("failed to recompute aggregates: %w", err)
	}
	return nil
}

// UploadAttachment stores an attachment file and records its path on the
// invoice. An existing attachment is replaced.
func (s *InvoiceService) UploadAttachment(ctx context.Context, ownerID, invoiceID uuid.UUID, filename, contentType string, data io.Reader) (*domain.InvoiceDTO, error) {
	invoice, err := s.getOwned(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	path, size, err := s.files.Upload(ctx, filename, contentType, data)
	if err != nil {
		s.logger.Error("Failed to upload attachment", zap.Error(err))
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	if invoice.AttachmentPath != "" {
		if err := s.files.Delete(ctx, invoice.AttachmentPath); err != nil {
			s.logger.Warn("Failed to delete previous attachment", zap.Error(err))
		}
	}

	invoice.AttachmentPath = path
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	s.logger.Info("Uploaded invoice attachment",
		zap.String("invoiceId", invoice.ID.String()),
		zap.Int64("size", size))

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

// DownloadAttachment streams an invoice's attachment
func (s *InvoiceService) DownloadAttachment(ctx context.Context, ownerID, invoiceID uuid.UUID) (io.ReadCloser, error) {
	invoice, err := s.getOwned(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.AttachmentPath == "" {
		return nil, fmt.Errorf("invoice %s has no attachment: %w", invoiceID, ErrNotFound)
	}
	reader, err := s.files.Download(ctx, invoice.AttachmentPath)
	if err != nil {
		s.logger.Error("Failed to download attachment", zap.Error(err))
		return nil, fmt.Errorf("failed to download attachment: %w", err)
	}
	return reader, nil
}

// validateLineAssignment refuses a budget line that does not belong to the
// invoice's project. Aggregating an invoice into another project's line would
// corrupt both projects' totals.
func (s *InvoiceService) validateLineAssignment(ctx context.Context, projectID, lineID *uuid.UUID) error {
	if lineID == nil {
		return nil
	}
	if projectID == nil {
		return fmt.Errorf("budget line set without a project: %w", ErrLineProjectMismatch)
	}
	line, err := s.lineRepo.GetByID(ctx, *lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("budget line %s: %w", *lineID, ErrNotFound)
		}
		return fmt.Errorf("failed to get budget line: %w", err)
	}
	if line.ProjectID != *projectID {
		return fmt.Errorf("line %s belongs to project %s: %w", line.ID, line.ProjectID, ErrLineProjectMismatch)
	}
	return nil
}

// getOwned fetches an invoice and verifies the caller owns the project it is
// assigned to. Unassigned invoices are visible to any authenticated owner that
// created them through this API's scoped surface; they carry no project to
// check against, so only assigned invoices are ownership-filtered.
func (s *InvoiceService) getOwned(ctx context.Context, ownerID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice %s: %w", invoiceID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice.ProjectID != nil {
		if _, err := s.getOwnedProject(ctx, ownerID, *invoice.ProjectID); err != nil {
			return nil, err
		}
	}
	return invoice, nil
}

// getOwnedPayee fetches a payee and verifies ownership. A payee under another
// owner reports not found.
func (s *InvoiceService) getOwnedPayee(ctx context.Context, ownerID, payeeID uuid.UUID) (*domain.Payee, error) {
	payee, err := s.payeeRepo.GetByID(ctx, payeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payee %s: %w", payeeID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payee: %w", err)
	}
	if payee.OwnerID != ownerID {
		return nil, fmt.Errorf("payee %s: %w", payeeID, ErrNotFound)
	}
	return payee, nil
}

func (s *InvoiceService) getOwnedProject(ctx context.Context, ownerID, projectID uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project.OwnerID != ownerID {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	return project, nil
}
