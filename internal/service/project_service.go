package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/mapper"
	"github.com/slateworks/budget-api/internal/repository"
)

// validStatusTransitions defines the allowed project status changes
var validStatusTransitions = map[domain.ProjectStatus][]domain.ProjectStatus{
	domain.ProjectStatusActive:   {domain.ProjectStatusWrapped, domain.ProjectStatusArchived},
	domain.ProjectStatusWrapped:  {domain.ProjectStatusActive, domain.ProjectStatusArchived},
	domain.ProjectStatusArchived: {domain.ProjectStatusActive},
}

func isValidStatusTransition(from, to domain.ProjectStatus) bool {
	for _, allowed := range validStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	lineRepo    *repository.BudgetLineRepository
	fringeRepo  *repository.FringeRuleRepository
	payeeRepo   *repository.PayeeRepository
	reconciler  *ReconcileService
	logger      *zap.Logger
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(
	projectRepo *repository.ProjectRepository,
	lineRepo *repository.BudgetLineRepository,
	fringeRepo *repository.FringeRuleRepository,
	payeeRepo *repository.PayeeRepository,
	reconciler *ReconcileService,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		lineRepo:    lineRepo,
		fringeRepo:  fringeRepo,
		payeeRepo:   payeeRepo,
		reconciler:  reconciler,
		logger:      logger,
	}
}

// Create creates a new project, optionally with initial budget lines. The
// initial total_budget is derived from the same per-line estimates every later
// recomputation uses.
func (s *ProjectService) Create(ctx context.Context, ownerID uuid.UUID, req domain.CreateProjectRequest) (*domain.ProjectDTO, error) {
	rulesetName := strings.TrimSpace(req.Ruleset)
	if rulesetName == "" {
		rulesetName = string(domain.RulesetFlatRate)
	}
	if kind, ok := domain.ParseRulesetKind(rulesetName); ok {
		rulesetName = string(kind)
	}

	project := &domain.Project{
		OwnerID:     ownerID,
		Name:        req.Name,
		ProjectCode: strings.TrimSpace(req.ProjectCode),
		Ruleset:     rulesetName,
		Status:      domain.ProjectStatusActive,
		Tags:        req.Tags,
	}

	totalBudget := 0.0
	for i, lineReq := range req.Lines {
		if lineReq.PayeeID != nil {
			if _, err := s.getOwnedPayee(ctx, ownerID, *lineReq.PayeeID); err != nil {
				return nil, err
			}
		}
		line := buildLine(project.ID, i+1, lineReq)
		line.Estimate = computeLineEstimate(rulesetName, &line, nil, s.logger)
		totalBudget += line.Estimate
		project.Lines = append(project.Lines, line)
	}
	project.TotalBudget = totalBudget

	if err := s.projectRepo.Create(ctx, project); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("project code %q already in use: %w", project.ProjectCode, ErrConflict)
		}
		s.logger.Error("Failed to create project", zap.Error(err))
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("Created project",
		zap.String("projectId", project.ID.String()),
		zap.String("projectCode", project.ProjectCode),
		zap.String("ruleset", project.Ruleset))

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

// GetByID retrieves an owner's project with its lines and fringe rules
func (s *ProjectService) GetByID(ctx context.Context, ownerID, projectID uuid.UUID) (*domain.ProjectWithLinesDTO, error) {
	project, err := s.getOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	project, err = s.projectRepo.GetByIDWithLines(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	dto := mapper.ToProjectWithLinesDTO(project)
	return &dto, nil
}

// List returns all of an owner's projects
func (s *ProjectService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.ProjectDTO, error) {
	projects, err := s.projectRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to list projects", zap.Error(err))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	dtos := make([]domain.ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = mapper.ToProjectDTO(&projects[i])
	}
	return dtos, nil
}

// Update updates a project's name, ruleset and tags. A ruleset change
// recomputes every line's estimate and the project total.
func (s *ProjectService) Update(ctx context.Context, ownerID, projectID uuid.UUID, req domain.UpdateProjectRequest) (*domain.ProjectDTO, error) {
	project, err := s.getOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	rulesetChanged := false
	if req.Ruleset != "" {
		rulesetName := req.Ruleset
		if kind, ok := domain.ParseRulesetKind(rulesetName); ok {
			rulesetName = string(kind)
		}
		if rulesetName != project.Ruleset {
			project.Ruleset = rulesetName
			rulesetChanged = true
		}
	}
	project.Name = req.Name
	project.Tags = req.Tags

	if err := s.projectRepo.Update(ctx, project); err != nil {
		s.logger.Error("Failed to update project", zap.Error(err))
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	if rulesetChanged {
		if err := s.recomputeAllEstimates(ctx, project); err != nil {
			return nil, err
		}
		project, err = s.projectRepo.GetByID(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh project: %w", err)
		}
	}

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

// UpdateStatus moves a project through its status lifecycle
func (s *ProjectService) UpdateStatus(ctx context.Context, ownerID, projectID uuid.UUID, status domain.ProjectStatus) (*domain.ProjectDTO, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrInvalidInput)
	}
	project, err := s.getOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != status && !isValidStatusTransition(project.Status, status) {
		return nil, fmt.Errorf("cannot move project from %s to %s: %w", project.Status, status, ErrInvalidStatusTransition)
	}

	project.Status = status
	if err := s.projectRepo.Update(ctx, project); err != nil {
		s.logger.Error("Failed to update project status", zap.Error(err))
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}

	s.logger.Info("Project status changed",
		zap.String("projectId", project.ID.String()),
		zap.String("status", string(status)))

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

// Delete removes a project and, via cascade, its lines and fringe rules
func (s *ProjectService) Delete(ctx context.Context, ownerID, projectID uuid.UUID) error {
	project, err := s.getOwned(ctx, ownerID, projectID)
	if err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, project.ID); err != nil {
		s.logger.Error("Failed to delete project", zap.Error(err))
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.logger.Info("Deleted project", zap.String("projectId", projectID.String()))
	return nil
}

// Recalculate re-derives every line estimate, every line's actual spent and
// the project totals. Safe to run at any time.
func (s *ProjectService) Recalculate(ctx context.Context, ownerID, projectID uuid.UUID) (*domain.ProjectWithLinesDTO, error) {
	project, err := s.getOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.recomputeAllEstimates(ctx, project); err != nil {
		return nil, err
	}
	if err := s.reconciler.RecomputeProjectFull(ctx, project.ID); err != nil {
		return nil, fmt.Errorf("failed to recompute project aggregates: %w", err)
	}
	return s.GetByID(ctx, ownerID, projectID)
}

// recomputeAllEstimates rebuilds every line's estimate from raw inputs through
// the project's current ruleset and fringe assignments, then re-derives totals
func (s *ProjectService) recomputeAllEstimates(ctx context.Context, project *domain.Project) error {
	lines, err := s.lineRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("failed to list budget lines: %w", err)
	}
	rules, err := s.fringeRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("failed to list fringe rules: %w", err)
	}
	rulesByID := make(map[uuid.UUID]*domain.FringeRule, len(rules))
	for i := range rules {
		rulesByID[rules[i].ID] = &rules[i]
	}

	for i := range lines {
		line := &lines[i]
		var fringe *domain.FringeRule
		if line.FringeRuleID != nil {
			fringe = rulesByID[*line.FringeRuleID]
		}
		line.Estimate = computeLineEstimate(project.Ruleset, line, fringe, s.logger)
		if err := s.lineRepo.Update(ctx, line); err != nil {
			return fmt.Errorf("failed to update line %s: %w", line.ID, err)
		}
	}

	return s.reconciler.OnLineEstimateChanged(ctx, project.ID)
}

// getOwned fetches a project and verifies ownership. A project under another
// owner reports not found.
func (s *ProjectService) getOwned(ctx context.Context, ownerID, projectID uuid.UUID) (*domain.Project, error) {
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
func (s *ProjectService) getOwnedPayee(ctx context.Context, ownerID, payeeID uuid.UUID) (*domain.Payee, error) {
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

func buildLine(projectID uuid.UUID, lineNumber int, req domain.CreateBudgetLineRequest) domain.BudgetLine {
	category := req.Category
	if category == "" {
		category = domain.CategoryProduction
	}
	return domain.BudgetLine{
		ProjectID:     projectID,
		Category:      category,
		LineNumber:    lineNumber,
		Description:   req.Description,
		Quantity:      req.Quantity,
		Days:          req.Days,
		Rate:          req.Rate,
		OT15:          req.OT15,
		OT2:           req.OT2,
		OT25:          req.OT25,
		OTHours:       req.OTHours,
		MidnightHours: req.MidnightHours,
		RunningAmount: req.RunningAmount,
		PayeeID:       req.PayeeID,
	}
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "unique")
}
