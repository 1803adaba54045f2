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

// FringeRuleService handles business logic for fringe rules
type FringeRuleService struct {
	fringeRepo  *repository.FringeRuleRepository
	projectRepo *repository.ProjectRepository
	lineRepo    *repository.BudgetLineRepository
	reconciler  *ReconcileService
	logger      *zap.Logger
}

// NewFringeRuleService creates a new FringeRuleService instance
func NewFringeRuleService(
	fringeRepo *repository.FringeRuleRepository,
	projectRepo *repository.ProjectRepository,
	lineRepo *repository.BudgetLineRepository,
	reconciler *ReconcileService,
	logger *zap.Logger,
) *FringeRuleService {
	return &FringeRuleService{
		fringeRepo:  fringeRepo,
		projectRepo: projectRepo,
		lineRepo:    lineRepo,
		reconciler:  reconciler,
		logger:      logger,
	}
}

// Create adds a fringe rule to a project
func (s *FringeRuleService) Create(ctx context.Context, ownerID, projectID uuid.UUID, req domain.CreateFringeRuleRequest) (*domain.FringeRuleDTO, error) {
	project, err := s.getOwnedProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	rule := &domain.FringeRule{
		ProjectID:  project.ID,
		Name:       req.Name,
		Percentage: req.Percentage,
	}
	if err := s.fringeRepo.Create(ctx, rule); err != nil {
		s.logger.Error("Failed to create fringe rule", zap.Error(err))
		return nil, fmt.Errorf("failed to create fringe rule: %w", err)
	}
	dto := mapper.ToFringeRuleDTO(rule)
	return &dto, nil
}

// ListByProject returns a project's fringe rules
func (s *FringeRuleService) ListByProject(ctx context.Context, ownerID, projectID uuid.UUID) ([]domain.FringeRuleDTO, error) {
	project, err := s.getOwnedProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	rules, err := s.fringeRepo.ListByProject(ctx, project.ID)
	if err != nil {
		s.logger.Error("Failed to list fringe rules", zap.Error(err))
		return nil, fmt.Errorf("failed to list fringe rules: %w", err)
	}
	dtos := make([]domain.FringeRuleDTO, len(rules))
	for i := range rules {
		dtos[i] = mapper.ToFringeRuleDTO(&rules[i])
	}
	return dtos, nil
}

// Update changes a fringe rule's name or percentage. A percentage change
// re-derives the estimate of every line using the rule, always starting from
// the unadjusted ruleset output.
func (s *FringeRuleService) Update(ctx context.Context, ownerID, ruleID uuid.UUID, req domain.UpdateFringeRuleRequest) (*domain.FringeRuleDTO, error) {
	rule, project, err := s.getOwnedRule(ctx, ownerID, ruleID)
	if err != nil {
		return nil, err
	}

	percentageChanged := rule.Percentage != req.Percentage
	rule.Name = req.Name
	rule.Percentage = req.Percentage

	if err := s.fringeRepo.Update(ctx, rule); err != nil {
		s.logger.Error("Failed to update fringe rule", zap.Error(err))
		return nil, fmt.Errorf("failed to update fringe rule: %w", err)
	}

	if percentageChanged {
		if err := s.recomputeLinesUsingRule(ctx, project, rule); err != nil {
			return nil, err
		}
	}

	dto := mapper.ToFringeRuleDTO(rule)
	return &dto, nil
}

// Delete removes a fringe rule, detaches it from its lines and resets their
// estimates to the unadjusted ruleset output
func (s *FringeRuleService) Delete(ctx context.Context, ownerID, ruleID uuid.UUID) error {
	rule, project, err := s.getOwnedRule(ctx, ownerID, ruleID)
	if err != nil {
		return err
	}

	lineIDs, err := s.fringeRepo.ClearFromLines(ctx, rule.ID)
	if err != nil {
		s.logger.Error("Failed to detach fringe rule from lines", zap.Error(err))
		return fmt.Errorf("failed to detach fringe rule: %w", err)
	}

	if err := s.fringeRepo.Delete(ctx, rule.ID); err != nil {
		s.logger.Error("Failed to delete fringe rule", zap.Error(err))
		return fmt.Errorf("failed to delete fringe rule: %w", err)
	}

	for _, lineID := range lineIDs {
		line, err := s.lineRepo.GetByID(ctx, lineID)
		if err != nil {
			return fmt.Errorf("failed to get line %s: %w", lineID, err)
		}
		line.Estimate = computeLineEstimate(project.Ruleset, line, nil, s.logger)
		if err := s.lineRepo.Update(ctx, line); err != nil {
			return fmt.Errorf("failed to update line %s: %w", lineID, err)
		}
	}
	if len(lineIDs) > 0 {
		if err := s.reconciler.OnLineEstimateChanged(ctx, project.ID); err != nil {
			return fmt.Errorf("failed to recompute aggregates: %w", err)
		}
	}
	return nil
}

// recomputeLinesUsingRule re-derives estimates for every line assigned to the
// rule
func (s *FringeRuleService) recomputeLinesUsingRule(ctx context.Context, project *domain.Project, rule *domain.FringeRule) error {
	lines, err := s.lineRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("failed to list budget lines: %w", err)
	}
	touched := false
	for i := range lines {
		line := &lines[i]
		if line.FringeRuleID == nil || *line.FringeRuleID != rule.ID {
			continue
		}
		line.Estimate = computeLineEstimate(project.Ruleset, line, rule, s.logger)
		if err := s.lineRepo.Update(ctx, line); err != nil {
			return fmt.Errorf("failed to update line %s: %w", line.ID, err)
		}
		touched = true
	}
	if touched {
		if err := s.reconciler.OnLineEstimateChanged(ctx, project.ID); err != nil {
			return fmt.Errorf("failed to recompute aggregates: %w", err)
		}
	}
	return nil
}

func (s *FringeRuleService) getOwnedRule(ctx context.Context, ownerID, ruleID uuid.UUID) (*domain.FringeRule, *domain.Project, error) {
	rule, err := s.fringeRepo.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("fringe rule %s: %w", ruleID, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to get fringe rule: %w", err)
	}
	project, err := s.getOwnedProject(ctx, ownerID, rule.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return rule, project, nil
}

func (s *FringeRuleService) getOwnedProject(ctx context.Context, ownerID, projectID uuid.UUID) (*domain.Project, error) {
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
