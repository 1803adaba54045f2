package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/repository"
)

// ReconcileService keeps the derived aggregates consistent with invoice and
// budget line state. Every recompute is a full re-derivation from the current
// record set, never an incremental delta, so repeated runs are no-ops and a
// retry after a failure is always safe.
//
// A recompute writes all derived fields of an entity inside one transaction.
// The line's actual_spent and its project's total_budget/total_spent land
// together or not at all.
type ReconcileService struct {
	db          *gorm.DB
	projectRepo *repository.ProjectRepository
	lineRepo    *repository.BudgetLineRepository
	invoiceRepo *repository.InvoiceRepository
	logger      *zap.Logger
}

// NewReconcileService creates a new ReconcileService instance
func NewReconcileService(
	db *gorm.DB,
	projectRepo *repository.ProjectRepository,
	lineRepo *repository.BudgetLineRepository,
	invoiceRepo *repository.InvoiceRepository,
	logger *zap.Logger,
) *ReconcileService {
	return &ReconcileService{
		db:          db,
		projectRepo: projectRepo,
		lineRepo:    lineRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// RecomputeProject re-derives a project's total_budget and total_spent
func (s *ReconcileService) RecomputeProject(ctx context.Context, projectID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.recomputeProject(ctx, tx, projectID)
	})
}

// RecomputeLine re-derives a budget line's actual_spent together with its
// project's totals
func (s *ReconcileService) RecomputeLine(ctx context.Context, lineID uuid.UUID) error {
	line, err := s.lineRepo.GetByID(ctx, lineID)
	if err != nil {
		return fmt.Errorf("failed to get budget line: %w", err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.recomputeLine(ctx, tx, lineID); err != nil {
			return err
		}
		return s.recomputeProject(ctx, tx, line.ProjectID)
	})
}

// OnInvoiceChanged re-derives the aggregates an invoice mutation can have
// touched: the assigned line (if any) and the assigned project (if any).
// Fired after creation with a counting status, any status transition and
// deletion.
func (s *ReconcileService) OnInvoiceChanged(ctx context.Context, projectID, lineID *uuid.UUID) error {
	if projectID == nil && lineID == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if lineID != nil {
			if err := s.recomputeLine(ctx, tx, *lineID); err != nil {
				return err
			}
		}
		if projectID != nil {
			if err := s.recomputeProject(ctx, tx, *projectID); err != nil {
				return err
			}
		}
		return nil
	})
}

// OnInvoiceReassigned re-derives the previous and the new assignment targets.
// Each side is a full re-derivation, so the two recomputes are commutative.
func (s *ReconcileService) OnInvoiceReassigned(ctx context.Context, oldProjectID, oldLineID, newProjectID, newLineID *uuid.UUID) error {
	if err := s.OnInvoiceChanged(ctx, oldProjectID, oldLineID); err != nil {
		return err
	}
	return s.OnInvoiceChanged(ctx, newProjectID, newLineID)
}

// OnLineEstimateChanged re-derives the owning project's totals after a line's
// estimate changed
func (s *ReconcileService) OnLineEstimateChanged(ctx context.Context, projectID uuid.UUID) error {
	return s.RecomputeProject(ctx, projectID)
}

func (s *ReconcileService) recomputeLine(ctx context.Context, tx *gorm.DB, lineID uuid.UUID) error {
	actualSpent, err := s.invoiceRepo.WithTx(tx).SumSpentByLine(ctx, lineID)
	if err != nil {
		return fmt.Errorf("failed to sum invoices for line %s: %w", lineID, err)
	}
	if err := s.lineRepo.WithTx(tx).UpdateActualSpent(ctx, lineID, actualSpent); err != nil {
		return fmt.Errorf("failed to update actual spent for line %s: %w", lineID, err)
	}
	s.logger.Debug("Recomputed line actuals",
		zap.String("lineId", lineID.String()),
		zap.Float64("actualSpent", actualSpent))
	return nil
}

func (s *ReconcileService) recomputeProject(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) error {
	totalBudget, err := s.lineRepo.WithTx(tx).SumEstimates(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to sum estimates for project %s: %w", projectID, err)
	}
	totalSpent, err := s.invoiceRepo.WithTx(tx).SumSpentByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to sum invoices for project %s: %w", projectID, err)
	}
	if err := s.projectRepo.WithTx(tx).UpdateTotals(ctx, projectID, totalBudget, totalSpent); err != nil {
		return fmt.Errorf("failed to update totals for project %s: %w", projectID, err)
	}
	s.logger.Debug("Recomputed project totals",
		zap.String("projectId", projectID.String()),
		zap.Float64("totalBudget", totalBudget),
		zap.Float64("totalSpent", totalSpent))
	return nil
}

// SweepProjects re-derives totals for every project in the given status.
// Used by the nightly job to heal any drift in the materialized aggregates.
func (s *ReconcileService) SweepProjects(ctx context.Context, projectIDs []uuid.UUID) (int, error) {
	healed := 0
	for _, id := range projectIDs {
		if err := s.recomputeProjectWithLines(ctx, id); err != nil {
			s.logger.Warn("Sweep failed for project", zap.String("projectId", id.String()), zap.Error(err))
			continue
		}
		healed++
	}
	return healed, nil
}

// recomputeProjectWithLines re-derives every line's actual_spent and the
// project totals in one transaction
func (s *ReconcileService) recomputeProjectWithLines(ctx context.Context, projectID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := s.lineRepo.WithTx(tx).ListByProject(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to list lines for project %s: %w", projectID, err)
		}
		for _, line := range lines {
			if err := s.recomputeLine(ctx, tx, line.ID); err != nil {
				return err
			}
		}
		return s.recomputeProject(ctx, tx, projectID)
	})
}

// RecomputeProjectFull is the operator-facing full re-derivation of a project
// and all of its lines
func (s *ReconcileService) RecomputeProjectFull(ctx context.Context, projectID uuid.UUID) error {
	return s.recomputeProjectWithLines(ctx, projectID)
}
