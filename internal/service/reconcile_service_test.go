package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slateworks/budget-api/internal/domain"
)

func TestReconcileService_InvoiceStatusTransitions(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Commercial Shoot", "CS-100", "FLAT_RATE")
	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description: "Director of Photography",
		Days:        5,
		Rate:        1000,
	})
	assert.Equal(t, 5000.0, line.Estimate)

	invoice := env.createInvoice(t, ctx, domain.CreateInvoiceRequest{
		ProjectID:    &project.ID,
		BudgetLineID: &line.ID,
		Amount:       1200,
	})

	t.Run("waiting approval does not count", func(t *testing.T) {
		stored := env.getLine(t, line.ID)
		assert.Equal(t, 0.0, stored.ActualSpent)
		assert.Equal(t, 0.0, env.getProject(t, project.ID).TotalSpent)
	})

	t.Run("approval adds to line and project in one recompute", func(t *testing.T) {
		_, err := env.invoiceSvc.UpdateStatus(ctx, env.owner.ID, invoice.ID, domain.InvoiceStatusApproved)
		require.NoError(t, err)

		assert.Equal(t, 1200.0, env.getLine(t, line.ID).ActualSpent)
		assert.Equal(t, 1200.0, env.getProject(t, project.ID).TotalSpent)
	})

	t.Run("paid keeps counting", func(t *testing.T) {
		_, err := env.invoiceSvc.UpdateStatus(ctx, env.owner.ID, invoice.ID, domain.InvoiceStatusPaid)
		require.NoError(t, err)

		assert.Equal(t, 1200.0, env.getLine(t, line.ID).ActualSpent)
		assert.Equal(t, 1200.0, env.getProject(t, project.ID).TotalSpent)
	})

	t.Run("flagging removes the contribution again", func(t *testing.T) {
		_, err := env.invoiceSvc.UpdateStatus(ctx, env.owner.ID, invoice.ID, domain.InvoiceStatusFlagged)
		require.NoError(t, err)

		assert.Equal(t, 0.0, env.getLine(t, line.ID).ActualSpent)
		assert.Equal(t, 0.0, env.getProject(t, project.ID).TotalSpent)
	})
}

func TestReconcileService_DeleteRestoresAggregates(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Feature Film", "FF-200", "FLAT_RATE")
	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description: "Gaffer",
		Days:        10,
		Rate:        800,
	})

	invoice := env.createInvoice(t, ctx, domain.CreateInvoiceRequest{
		ProjectID:    &project.ID,
		BudgetLineID: &line.ID,
		Amount:       3500,
		Status:       domain.InvoiceStatusApproved,
	})
	require.Equal(t, 3500.0, env.getLine(t, line.ID).ActualSpent)

	require.NoError(t, env.invoiceSvc.Delete(ctx, env.owner.ID, invoice.ID))

	assert.Equal(t, 0.0, env.getLine(t, line.ID).ActualSpent)
	assert.Equal(t, 0.0, env.getProject(t, project.ID).TotalSpent)
}

func TestReconcileService_ProjectLevelInvoice(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Documentary", "DOC-1", "FLAT_RATE")
	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description: "Editor",
		Days:        4,
		Rate:        600,
	})

	// Assigned to the project but to no budget line
	env.createInvoice(t, ctx, domain.CreateInvoiceRequest{
		ProjectID: &project.ID,
		Amount:    900,
		Status:    domain.InvoiceStatusApproved,
	})

	assert.Equal(t, 0.0, env.getLine(t, line.ID).ActualSpent)
	assert.Equal(t, 900.0, env.getProject(t, project.ID).TotalSpent)
}

func TestReconcileService_Reassign(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Pilot Episode", "PE-1", "FLAT_RATE")
	lineA := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description: "Sound Mixer", Days: 3, Rate: 700,
	})
	lineB := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description: "Boom Operator", Days: 3, Rate: 450,
	})

	invoice := env.createInvoice(t, ctx, domain.CreateInvoiceRequest{
		ProjectID:    &project.ID,
		BudgetLineID: &lineA.ID,
		Amount:       2100,
		Status:       domain.InvoiceStatusApproved,
	})
	require.Equal(t, 2100.0, env.getLine(t, lineA.ID).ActualSpent)

	_, err := env.invoiceSvc.Reassign(ctx, env.owner.ID, invoice.ID, domain.ReassignInvoiceRequest{
		ProjectID:    &project.ID,
		BudgetLineID: &lineB.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, env.getLine(t, lineA.ID).ActualSpent)
	assert.Equal(t, 2100.0, env.getLine(t, lineB.ID).ActualSpent)
	assert.Equal(t, 2100.0, env.getProject(t, project.ID).TotalSpent)
}

func TestReconcileService_Idempotence(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Short Film", "SF-9", "FLAT_RATE")
	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description: "Grip", Days: 2, Rate: 500, OT15: 1,
	})
	env.createInvoice(t, ctx, domain.CreateInvoiceRequest{
		ProjectID:    &project.ID,
		BudgetLineID: &line.ID,
		Amount:       640,
		Status:       domain.InvoiceStatusApproved,
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, env.reconciler.RecomputeProjectFull(ctx, project.ID))
	}

	stored := env.getProject(t, project.ID)
	assert.Equal(t, 1750.0, stored.TotalBudget)
	assert.Equal(t, 640.0, stored.TotalSpent)
	assert.Equal(t, 640.0, env.getLine(t, line.ID).ActualSpent)
}

func TestReconcileService_SweepHealsDrift(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Music Video", "MV-3", "FLAT_RATE")
	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description: "Colorist", Days: 1, Rate: 900,
	})
	env.createInvoice(t, ctx, domain.CreateInvoiceRequest{
		ProjectID:    &project.ID,
		BudgetLineID: &line.ID,
		Amount:       450,
		Status:       domain.InvoiceStatusPaid,
	})

	// Corrupt the materialized aggregates behind the engine's back
	require.NoError(t, env.db.Model(&domain.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{"total_budget": 1.0, "total_spent": 99999.0}).Error)
	require.NoError(t, env.db.Model(&domain.BudgetLine{}).
		Where("id = ?", line.ID).
		Update("actual_spent", -5.0).Error)

	healed, err := env.reconciler.SweepProjects(ctx, []uuid.UUID{project.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, healed)

	stored := env.getProject(t, project.ID)
	assert.Equal(t, 900.0, stored.TotalBudget)
	assert.Equal(t, 450.0, stored.TotalSpent)
	assert.Equal(t, 450.0, env.getLine(t, line.ID).ActualSpent)
}

func TestReconcileService_OnInvoiceChangedUnassigned(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	// A fully unassigned invoice has nothing to recompute
	require.NoError(t, env.reconciler.OnInvoiceChanged(ctx, nil, nil))
}
