package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/repository"
	"github.com/slateworks/budget-api/internal/service"
	"github.com/slateworks/budget-api/internal/storage"
	"github.com/slateworks/budget-api/internal/testutil"
)

// testEnv wires every service against one isolated in-memory database
type testEnv struct {
	db    *gorm.DB
	owner *domain.User

	projectSvc *service.ProjectService
	lineSvc    *service.BudgetLineService
	fringeSvc  *service.FringeRuleService
	invoiceSvc *service.InvoiceService
	matchSvc   *service.AutoMatchService
	payeeSvc   *service.PayeeService
	reconciler *service.ReconcileService

	projectRepo *repository.ProjectRepository
	lineRepo    *repository.BudgetLineRepository
	invoiceRepo *repository.InvoiceRepository
	payeeRepo   *repository.PayeeRepository
	fringeRepo  *repository.FringeRuleRepository
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()

	projectRepo := repository.NewProjectRepository(db)
	lineRepo := repository.NewBudgetLineRepository(db)
	fringeRepo := repository.NewFringeRuleRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	payeeRepo := repository.NewPayeeRepository(db)

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	reconciler := service.NewReconcileService(db, projectRepo, lineRepo, invoiceRepo, log)

	return &testEnv{
		db:          db,
		owner:       testutil.CreateTestUser(t, db, "owner@example.com"),
		projectSvc:  service.NewProjectService(projectRepo, lineRepo, fringeRepo, payeeRepo, reconciler, log),
		lineSvc:     service.NewBudgetLineService(lineRepo, projectRepo, fringeRepo, payeeRepo, reconciler, log),
		fringeSvc:   service.NewFringeRuleService(fringeRepo, projectRepo, lineRepo, reconciler, log),
		invoiceSvc:  service.NewInvoiceService(invoiceRepo, projectRepo, lineRepo, payeeRepo, reconciler, files, log),
		matchSvc:    service.NewAutoMatchService(payeeRepo, projectRepo, lineRepo, invoiceRepo, reconciler, log),
		payeeSvc:    service.NewPayeeService(payeeRepo, log),
		reconciler:  reconciler,
		projectRepo: projectRepo,
		lineRepo:    lineRepo,
		invoiceRepo: invoiceRepo,
		payeeRepo:   payeeRepo,
		fringeRepo:  fringeRepo,
	}
}

// createProject creates a project through the service under the default owner
func (e *testEnv) createProject(t *testing.T, ctx context.Context, name, code, ruleset string) *domain.ProjectDTO {
	t.Helper()
	dto, err := e.projectSvc.Create(ctx, e.owner.ID, domain.CreateProjectRequest{
		Name:        name,
		ProjectCode: code,
		Ruleset:     ruleset,
	})
	require.NoError(t, err)
	return dto
}

// createLine adds a budget line through the service
func (e *testEnv) createLine(t *testing.T, ctx context.Context, projectID uuid.UUID, req domain.CreateBudgetLineRequest) *domain.BudgetLineDTO {
	t.Helper()
	dto, err := e.lineSvc.Create(ctx, e.owner.ID, projectID, req)
	require.NoError(t, err)
	return dto
}

// createInvoice records an invoice through the service
func (e *testEnv) createInvoice(t *testing.T, ctx context.Context, req domain.CreateInvoiceRequest) *domain.InvoiceDTO {
	t.Helper()
	dto, err := e.invoiceSvc.Create(ctx, e.owner.ID, req)
	require.NoError(t, err)
	return dto
}

// getProject reloads a project row directly from the database
func (e *testEnv) getProject(t *testing.T, id uuid.UUID) *domain.Project {
	t.Helper()
	var project domain.Project
	require.NoError(t, e.db.First(&project, "id = ?", id).Error)
	return &project
}

// getLine reloads a budget line row directly from the database
func (e *testEnv) getLine(t *testing.T, id uuid.UUID) *domain.BudgetLine {
	t.Helper()
	var line domain.BudgetLine
	require.NoError(t, e.db.First(&line, "id = ?", id).Error)
	return &line
}
