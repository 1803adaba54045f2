package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/mapper"
	"github.com/slateworks/budget-api/internal/repository"
)

// BudgetLineService handles business logic for budget lines
type BudgetLineService struct {
	lineRepo    *repository.BudgetLineRepository
	projectRepo *repository.ProjectRepository
	fringeRepo  *repository.FringeRuleRepository
	payeeRepo   *repository.PayeeRepository
	reconciler  *ReconcileService
	logger      *zap.Logger
}

// NewBudgetLineService creates a new BudgetLineService instance
func NewBudgetLineService(
	lineRepo *repository.BudgetLineRepository,
	projectRepo *repository.ProjectRepository,
	fringeRepo *repository.FringeRuleRepository,
	payeeRepo *repository.PayeeRepository,
	reconciler *ReconcileService,
	logger *zap.Logger,
) *BudgetLineService {
	return &BudgetLineService{
		lineRepo:    lineRepo,
		projectRepo: projectRepo,
		fringeRepo:  fringeRepo,
		payeeRepo:   payeeRepo,
		reconciler:  reconciler,
		logger:      logger,
	}
}

// Create adds a budget line to a project. The line number continues the
// project's sequence and the estimate is derived before the first write.
func (s *BudgetLineService) Create(ctx context.Context, ownerID, projectID uuid.UUID, req domain.CreateBudgetLineRequest) (*domain.BudgetLineDTO, error) {
	project, err := s.getOwnedProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	maxNumber, err := s.lineRepo.GetMaxLineNumber(ctx, project.ID)
	if err != nil {
		s.logger.Error("Failed to get max line number", zap.Error(err))
		return nil, fmt.Errorf("failed to get max line number: %w", err)
	}

	if req.PayeeID != nil {
		if _, err := s.getOwnedPayee(ctx, ownerID, *req.PayeeID); err != nil {
			return nil, err
		}
	}

	line := buildLine(project.ID, maxNumber+1, req)

	var fringe *domain.FringeRule
	if req.FringeRuleID != nil {
		fringe, err = s.getProjectFringeRule(ctx, project.ID, *req.FringeRuleID)
		if err != nil {
			return nil, err
		}
		line.FringeRuleID = req.FringeRuleID
	}
	line.Estimate = computeLineEstimate(project.Ruleset, &line, fringe, s.logger)

	if err := s.lineRepo.Create(ctx, &line); err != nil {
		s.logger.Error("Failed to create budget line", zap.Error(err))
		return nil, fmt.Errorf("failed to create budget line: %w", err)
	}

	if err := s.reconciler.OnLineEstimateChanged(ctx, project.ID); err != nil {
		return nil, fmt.Errorf("failed to recompute aggregates: %w", err)
	}

	dto := mapper.ToBudgetLineDTO(&line)
	return &dto, nil
}

// GetByID retrieves a budget line
func (s *BudgetLineService) GetByID(ctx context.Context, ownerID, lineID uuid.UUID) (*domain.BudgetLineDTO, error) {
	line, _, err := s.getOwnedLine(ctx, ownerID, lineID)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToBudgetLineDTO(line)
	return &dto, nil
}

// ListByProject returns a project's budget lines in line order
func (s *BudgetLineService) ListByProject(ctx context.Context, ownerID, projectID uuid.UUID) ([]domain.BudgetLineDTO, error) {
	project, err := s.getOwnedProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	lines, err := s.lineRepo.ListByProject(ctx, project.ID)
	if err != nil {
		s.logger.Error("Failed to list budget lines", zap.Error(err))
		return nil, fmt.Errorf("failed to list budget lines: %w", err)
	}
	dtos := make([]domain.BudgetLineDTO, len(lines))
	for i := range lines {
		dtos[i] = mapper.ToBudgetLineDTO(&lines[i])
	}
	return dtos, nil
}

// Update edits a line's fields and re-derives its estimate from the raw
// numeric inputs. runningAmount is stored as given and never recomputed.
func (s *BudgetLineService) Update(ctx context.Context, ownerID, lineID uuid.UUID, req domain.UpdateBudgetLineRequest) (*domain.BudgetLineDTO, error) {
	line, project, err := s.getOwnedLine(ctx, ownerID, lineID)
	if err != nil {
		return nil, err
	}

	if req.PayeeID != nil {
		if _, err := s.getOwnedPayee(ctx, ownerID, *req.PayeeID); err != nil {
			return nil, err
		}
	}

	if req.Category != "" {
		line.Category = req.Category
	}
	line.Description = req.Description
	line.Quantity = req.Quantity
	line.Days = req.Days
	line.Rate = req.Rate
	line.OT15 = req.OT15
	line.OT2 = req.OT2
	line.OT25 = req.OT25
	line.OTHours = req.OTHours
	line.MidnightHours = req.MidnightHours
	line.RunningAmount = req.RunningAmount
	line.PayeeID = req.PayeeID

	var fringe *domain.FringeRule
	if line.FringeRuleID != nil {
		fringe, err = s.getProjectFringeRule(ctx, project.ID, *line.FringeRuleID)
		if err != nil {
			return nil, err
		}
	}
	line.Estimate = computeLineEstimate(project.Ruleset, line, fringe, s.logger)

	if err := s.lineRepo.Update(ctx, line); err != nil {
		s.logger.Error("Failed to update budget line", zap.Error(err))
		return nil, fmt.Errorf("failed to update budget line: %w", err)
	}

	if err := s.reconciler.OnLineEstimateChanged(ctx, project.ID); err != nil {
		return nil, fmt.Errorf("failed to recompute aggregates: %w", err)
	}

	dto := mapper.ToBudgetLineDTO(line)
	return &dto, nil
}

// AssignFringe assigns or clears a line's fringe rule and re-derives the
// estimate from the unadjusted ruleset output
func (s *BudgetLineService) AssignFringe(ctx context.Context, ownerID, lineID uuid.UUID, fringeRuleID *uuid.UUID) (*domain.BudgetLineDTO, error) {
	line, project, err := s.getOwnedLine(ctx, ownerID, lineID)
	if err != nil {
		return nil, err
	}

	var fringe *domain.FringeRule
	if fringeRuleID != nil {
		fringe, err = s.getProjectFringeRule(ctx, project.ID, *fringeRuleID)
		if err != nil {
			return nil, err
		}
	}
	line.FringeRuleID = fringeRuleID
	line.Estimate = computeLineEstimate(project.Ruleset, line, fringe, s.logger)

	if err := s.lineRepo.Update(ctx, line); err != nil {
		s.logger.Error("Failed to update line fringe", zap.Error(err))
		return nil, fmt.Errorf("failed to update budget line: %w", err)
	}

	if err := s.reconciler.OnLineEstimateChanged(ctx, project.ID); err != nil {
		return nil, fmt.Errorf("failed to recompute aggregates: %w", err)
	}

	dto := mapper.ToBudgetLineDTO(line)
	return &dto, nil
}

// Reorder renumbers a project's lines to the given order
func (s *BudgetLineService) Reorder(ctx context.Context, ownerID, projectID uuid.UUID, orderedIDs []uuid.UUID) error {
	project, err := s.getOwnedProject(ctx, ownerID, projectID)
	if err != nil {
		return err
	}
	for _, id := range orderedIDs {
		line, err := s.lineRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("budget line %s: %w", id, ErrNotFound)
		}
		if line.ProjectID != project.ID {
			return fmt.Errorf("budget line %s does not belong to project %s: %w", id, project.ID, ErrInvalidInput)
		}
	}
	return s.lineRepo.UpdateLineNumbers(ctx, orderedIDs)
}

// Delete removes a budget line and re-derives the project totals
func (s *BudgetLineService) Delete(ctx context.Context, ownerID, lineID uuid.UUID) error {
	line, project, err := s.getOwnedLine(ctx, ownerID, lineID)
	if err != nil {
		return err
	}
	if err := s.lineRepo.Delete(ctx, line.ID); err != nil {
		s.logger.Error("Failed to delete budget line", zap.Error(err))
		return fmt.Errorf("failed to delete budget line: %w", err)
	}
	if err := s.reconciler.OnLineEstimateChanged(ctx, project.ID); err != nil {
		return fmt.Errorf("failed to recompute aggregates: %w", err)
	}
	return nil
}

// getOwnedLine fetches a line and its project, verifying ownership
func (s *BudgetLineService) getOwnedLine(ctx context.Context, ownerID, lineID uuid.UUID) (*domain.BudgetLine, *domain.Project, error) {
	line, err := s.lineRepo.GetByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("budget line %s: %w", lineID, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to get budget line: %w", err)
	}
	project, err := s.getOwnedProject(ctx, ownerID, line.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return line, project, nil
}

func (s *BudgetLineService) getOwnedProject(ctx context.Context, ownerID, projectID uuid.UUID) (*domain.Project, error) {
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

// getOwnedPayee fetches a payee and verifies ownership. A payee under another
// owner reports not found.
func (s *BudgetLineService) getOwnedPayee(ctx context.Context, ownerID, payeeID uuid.UUID) (*domain.Payee, error) {
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

// getProjectFringeRule fetches a fringe rule and verifies it belongs to the
// given project
func (s *BudgetLineService) getProjectFringeRule(ctx context.Context, projectID, ruleID uuid.UUID) (*domain.FringeRule, error) {
	rule, err := s.fringeRepo.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fringe rule %s: %w", ruleID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get fringe rule: %w", err)
	}
	if rule.ProjectID != projectID {
		return nil, fmt.Errorf("fringe rule %s does not belong to project %s: %w", ruleID, projectID, ErrInvalidInput)
	}
	return rule, nil
}
