package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/service"
	"github.com/slateworks/budget-api/internal/testutil"
)

func TestProjectService_Create(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	t.Run("create with defaults", func(t *testing.T) {
		result, err := env.projectSvc.Create(ctx, env.owner.ID, domain.CreateProjectRequest{
			Name:        "Spring Campaign",
			ProjectCode: "SC-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "Spring Campaign", result.Name)
		assert.Equal(t, string(domain.RulesetFlatRate), result.Ruleset)
		assert.Equal(t, domain.ProjectStatusActive, result.Status)
		assert.Equal(t, 0.0, result.TotalBudget)
	})

	t.Run("ruleset name is normalized", func(t *testing.T) {
		result, err := env.projectSvc.Create(ctx, env.owner.ID, domain.CreateProjectRequest{
			Name:        "APA Production",
			ProjectCode: "APA-01",
			Ruleset:     "apa",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.RulesetAPA), result.Ruleset)
	})

	t.Run("unknown ruleset is stored but estimates fall back to flat rate", func(t *testing.T) {
		result, err := env.projectSvc.Create(ctx, env.owner.ID, domain.CreateProjectRequest{
			Name:        "Legacy Import",
			ProjectCode: "LEG-01",
			Ruleset:     "CUSTOM_2019",
			Lines: []domain.CreateBudgetLineRequest{
				{Description: "Runner", Days: 2, Rate: 300},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "CUSTOM_2019", result.Ruleset)
		assert.Equal(t, 600.0, result.TotalBudget)
	})

	t.Run("initial lines derive the total budget", func(t *testing.T) {
		result, err := env.projectSvc.Create(ctx, env.owner.ID, domain.CreateProjectRequest{
			Name:        "Budgeted Shoot",
			ProjectCode: "BS-01",
			Lines: []domain.CreateBudgetLineRequest{
				{Description: "DP", Days: 5, Rate: 1000},
				{Description: "Gaffer", Days: 5, Rate: 800, OT15: 2},
			},
		})
		require.NoError(t, err)
		// 5000 + (4000 + 2*800*1.5)
		assert.Equal(t, 11400.0, result.TotalBudget)

		detail, err := env.projectSvc.GetByID(ctx, env.owner.ID, result.ID)
		require.NoError(t, err)
		require.Len(t, detail.Lines, 2)
		assert.Equal(t, 1, detail.Lines[0].LineNumber)
		assert.Equal(t, 2, detail.Lines[1].LineNumber)
	})

	t.Run("initial line with another owner's payee reads as not found", func(t *testing.T) {
		stranger := testutil.CreateTestUser(t, env.db, "crew-owner@example.com")
		foreign := testutil.CreateTestPayee(t, env.db, stranger.ID, "Their Crew", "crew@elsewhere.com")

		_, err := env.projectSvc.Create(ctx, env.owner.ID, domain.CreateProjectRequest{
			Name:        "Borrowed Crew",
			ProjectCode: "BC-01",
			Lines: []domain.CreateBudgetLineRequest{
				{Description: "Grip", Days: 1, Rate: 500, PayeeID: &foreign.ID},
			},
		})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("duplicate code under the same owner conflicts", func(t *testing.T) {
		_, err := env.projectSvc.Create(ctx, env.owner.ID, domain.CreateProjectRequest{
			Name:        "Original",
			ProjectCode: "DUP-01",
		})
		require.NoError(t, err)

		result, err := env.projectSvc.Create(ctx, env.owner.ID, domain.CreateProjectRequest{
			Name:        "Copy",
			ProjectCode: "DUP-01",
		})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, service.ErrConflict)
	})

	t.Run("same code under another owner is allowed", func(t *testing.T) {
		other := testutil.CreateTestUser(t, env.db, "second@example.com")
		_, err := env.projectSvc.Create(ctx, env.owner.ID, domain.CreateProjectRequest{
			Name: "Mine", ProjectCode: "SHARED-01",
		})
		require.NoError(t, err)

		result, err := env.projectSvc.Create(ctx, other.ID, domain.CreateProjectRequest{
			Name: "Theirs", ProjectCode: "SHARED-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "Theirs", result.Name)
	})
}

func TestProjectService_OwnershipScoping(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Private Production", "PP-01", "FLAT_RATE")
	stranger := testutil.CreateTestUser(t, env.db, "stranger@example.com")

	t.Run("another owner's project reads as not found", func(t *testing.T) {
		_, err := env.projectSvc.GetByID(ctx, stranger.ID, project.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("another owner cannot delete", func(t *testing.T) {
		err := env.projectSvc.Delete(ctx, stranger.ID, project.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("list only returns own projects", func(t *testing.T) {
		projects, err := env.projectSvc.List(ctx, stranger.ID)
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}

func TestProjectService_UpdateRulesetRecomputes(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Crew Heavy", "CH-01", "FLAT_RATE")
	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description: "Electricians",
		Quantity:    3,
		Days:        5,
		Rate:        400,
		OTHours:     10,
	})
	// Flat rate ignores quantity and otHours entirely
	assert.Equal(t, 2000.0, line.Estimate)

	updated, err := env.projectSvc.Update(ctx, env.owner.ID, project.ID, domain.UpdateProjectRequest{
		Name:    "Crew Heavy",
		Ruleset: "APA",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RulesetAPA), updated.Ruleset)

	// APA: 3*5*400 regular + 3*10*40*1.5 overtime
	stored := env.getLine(t, line.ID)
	assert.Equal(t, 7800.0, stored.Estimate)
	assert.Equal(t, 7800.0, env.getProject(t, project.ID).TotalBudget)
}

func TestProjectService_UpdateStatus(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	setStatus := func(t *testing.T, id uuid.UUID, status domain.ProjectStatus) {
		t.Helper()
		require.NoError(t, env.db.Model(&domain.Project{}).Where("id = ?", id).Update("status", status).Error)
	}

	t.Run("active to wrapped", func(t *testing.T) {
		project := env.createProject(t, ctx, "Wrap Me", "WM-01", "FLAT_RATE")
		result, err := env.projectSvc.UpdateStatus(ctx, env.owner.ID, project.ID, domain.ProjectStatusWrapped)
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectStatusWrapped, result.Status)
	})

	t.Run("wrapped back to active", func(t *testing.T) {
		project := env.createProject(t, ctx, "Reopen Me", "RM-01", "FLAT_RATE")
		setStatus(t, project.ID, domain.ProjectStatusWrapped)

		result, err := env.projectSvc.UpdateStatus(ctx, env.owner.ID, project.ID, domain.ProjectStatusActive)
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectStatusActive, result.Status)
	})

	t.Run("archived to wrapped is refused", func(t *testing.T) {
		project := env.createProject(t, ctx, "Deep Storage", "DS-01", "FLAT_RATE")
		setStatus(t, project.ID, domain.ProjectStatusArchived)

		result, err := env.projectSvc.UpdateStatus(ctx, env.owner.ID, project.ID, domain.ProjectStatusWrapped)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, service.ErrInvalidStatusTransition)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		project := env.createProject(t, ctx, "Steady", "ST-01", "FLAT_RATE")
		result, err := env.projectSvc.UpdateStatus(ctx, env.owner.ID, project.ID, domain.ProjectStatusActive)
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectStatusActive, result.Status)
	})

	t.Run("unknown status is invalid input", func(t *testing.T) {
		project := env.createProject(t, ctx, "Bad Status", "BST-01", "FLAT_RATE")
		_, err := env.projectSvc.UpdateStatus(ctx, env.owner.ID, project.ID, domain.ProjectStatus("paused"))
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestProjectService_Recalculate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Repair Job", "RJ-01", "FLAT_RATE")
	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description: "Production Designer", Days: 6, Rate: 750,
	})
	env.createInvoice(t, ctx, domain.CreateInvoiceRequest{
		ProjectID:    &project.ID,
		BudgetLineID: &line.ID,
		Amount:       1800,
		Status:       domain.InvoiceStatusApproved,
	})

	// Corrupt stored values, then ask for a full recalculation
	require.NoError(t, env.db.Model(&domain.Project{}).Where("id = ?", project.ID).
		Updates(map[string]interface{}{"total_budget": 0.0, "total_spent": 0.0}).Error)

	result, err := env.projectSvc.Recalculate(ctx, env.owner.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 4500.0, result.TotalBudget)
	assert.Equal(t, 1800.0, result.TotalSpent)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, 1800.0, result.Lines[0].ActualSpent)
}
