package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/repository"
)

// AutoMatchService resolves unauthenticated external invoice submissions to a
// payee, project and, when possible, a budget line. The submitter identifies
// the target only by payee email and project code.
//
// Failures short-circuit in order and create no partial state. The project
// lookup is scoped to the payee's owner inside the query itself, so a valid
// code under a different owner is indistinguishable from an unknown code.
type AutoMatchService struct {
	payeeRepo   *repository.PayeeRepository
	projectRepo *repository.ProjectRepository
	lineRepo    *repository.BudgetLineRepository
	invoiceRepo *repository.InvoiceRepository
	reconciler  *ReconcileService
	logger      *zap.Logger
}

// NewAutoMatchService creates a new AutoMatchService instance
func NewAutoMatchService(
	payeeRepo *repository.PayeeRepository,
	projectRepo *repository.ProjectRepository,
	lineRepo *repository.BudgetLineRepository,
	invoiceRepo *repository.InvoiceRepository,
	reconciler *ReconcileService,
	logger *zap.Logger,
) *AutoMatchService {
	return &AutoMatchService{
		payeeRepo:   payeeRepo,
		projectRepo: projectRepo,
		lineRepo:    lineRepo,
		invoiceRepo: invoiceRepo,
		reconciler:  reconciler,
		logger:      logger,
	}
}

// Submit matches an external submission and records the invoice in
// WAITING_APPROVAL
func (s *AutoMatchService) Submit(ctx context.Context, req domain.SubmitInvoiceRequest) (*domain.SubmissionResultDTO, error) {
	email := strings.TrimSpace(req.Email)
	projectCode := strings.TrimSpace(req.ProjectCode)

	payee, err := s.payeeRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Info("Submission rejected, unknown email", zap.String("projectCode", projectCode))
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("failed to look up payee: %w", err)
	}

	project, err := s.projectRepo.GetByCodeAndOwner(ctx, projectCode, payee.OwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Info("Submission rejected, project code mismatch",
				zap.String("payeeId", payee.ID.String()),
				zap.String("projectCode", projectCode))
			return nil, ErrProjectCodeMismatch
		}
		return nil, fmt.Errorf("failed to look up project: %w", err)
	}

	// Line assignment is best effort. No line for this payee only means the
	// invoice stays unassigned within the project.
	invoice := &domain.Invoice{
		ProjectID: &project.ID,
		PayeeID:   &payee.ID,
		Amount:    req.Amount,
		Status:    domain.InvoiceStatusWaitingApproval,
		Reference: req.Reference,
		Notes:     req.Notes,
	}
	line, err := s.lineRepo.GetEarliestByProjectAndPayee(ctx, project.ID, payee.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up budget lines: %w", err)
	}
	if line != nil {
		invoice.BudgetLineID = &line.ID
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		s.logger.Error("Failed to create submitted invoice", zap.Error(err))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	// WAITING_APPROVAL never counts toward spent, so no recompute runs here.
	// The guard keeps creation symmetric with the status transition path in
	// case the initial status ever changes.
	if invoice.Status.CountsTowardSpent() {
		if err := s.reconciler.OnInvoiceChanged(ctx, invoice.ProjectID, invoice.BudgetLineID); err != nil {
			return nil, fmt.Errorf("failed to recompute aggregates: %w", err)
		}
	}

	s.logger.Info("Matched external invoice",
		zap.String("invoiceId", invoice.ID.String()),
		zap.String("projectId", project.ID.String()),
		zap.Bool("lineMatched", invoice.BudgetLineID != nil))

	return &domain.SubmissionResultDTO{
		ID:          invoice.ID,
		Status:      string(invoice.Status),
		PayeeName:   payee.Name,
		ProjectName: project.Name,
	}, nil
}
