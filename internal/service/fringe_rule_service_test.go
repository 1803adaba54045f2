package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/service"
	"github.com/slateworks/budget-api/internal/testutil"
)

func TestFringeRuleService_UpdateRecomputesLines(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Fringe Updates", "FU-01", "FLAT_RATE")
	rule, err := env.fringeSvc.Create(ctx, env.owner.ID, project.ID, domain.CreateFringeRuleRequest{
		Name:       "Benefits",
		Percentage: 10,
	})
	require.NoError(t, err)

	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description:  "Set Builder",
		Days:         4,
		Rate:         500,
		FringeRuleID: &rule.ID,
	})
	require.InDelta(t, 2200.0, line.Estimate, 1e-9)

	untouched := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description: "Painter", Days: 2, Rate: 400,
	})

	t.Run("percentage change re-derives from the unadjusted base", func(t *testing.T) {
		_, err := env.fringeSvc.Update(ctx, env.owner.ID, rule.ID, domain.UpdateFringeRuleRequest{
			Name:       "Benefits",
			Percentage: 20,
		})
		require.NoError(t, err)

		// 2000 * 1.20, not 2200 * 1.20
		assert.InDelta(t, 2400.0, env.getLine(t, line.ID).Estimate, 1e-9)
		assert.Equal(t, 800.0, env.getLine(t, untouched.ID).Estimate)
		assert.InDelta(t, 3200.0, env.getProject(t, project.ID).TotalBudget, 1e-9)
	})

	t.Run("name-only change leaves estimates alone", func(t *testing.T) {
		_, err := env.fringeSvc.Update(ctx, env.owner.ID, rule.ID, domain.UpdateFringeRuleRequest{
			Name:       "Benefits Loading",
			Percentage: 20,
		})
		require.NoError(t, err)
		assert.InDelta(t, 2400.0, env.getLine(t, line.ID).Estimate, 1e-9)
	})
}

func TestFringeRuleService_DeleteDetachesLines(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Fringe Removal", "FR-01", "FLAT_RATE")
	rule, err := env.fringeSvc.Create(ctx, env.owner.ID, project.ID, domain.CreateFringeRuleRequest{
		Name:       "Pension",
		Percentage: 25,
	})
	require.NoError(t, err)

	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description:  "Carpenter",
		Days:         8,
		Rate:         300,
		FringeRuleID: &rule.ID,
	})
	require.InDelta(t, 3000.0, line.Estimate, 1e-9)

	require.NoError(t, env.fringeSvc.Delete(ctx, env.owner.ID, rule.ID))

	stored := env.getLine(t, line.ID)
	assert.Nil(t, stored.FringeRuleID)
	assert.Equal(t, 2400.0, stored.Estimate)
	assert.Equal(t, 2400.0, env.getProject(t, project.ID).TotalBudget)

	rules, err := env.fringeSvc.ListByProject(ctx, env.owner.ID, project.ID)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestFringeRuleService_OwnershipScoping(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Guarded", "GD-01", "FLAT_RATE")
	rule, err := env.fringeSvc.Create(ctx, env.owner.ID, project.ID, domain.CreateFringeRuleRequest{
		Name: "Tax", Percentage: 5,
	})
	require.NoError(t, err)

	stranger := testutil.CreateTestUser(t, env.db, "intruder@example.com")

	_, err = env.fringeSvc.Update(ctx, stranger.ID, rule.ID, domain.UpdateFringeRuleRequest{
		Name: "Hijacked", Percentage: 99,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = env.fringeSvc.Delete(ctx, stranger.ID, rule.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestFringeRuleService_AggregateFailurePropagates(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Locked Fringe", "LF-01", "FLAT_RATE")
	rule, err := env.fringeSvc.Create(ctx, env.owner.ID, project.ID, domain.CreateFringeRuleRequest{
		Name:       "Payroll Tax",
		Percentage: 10,
	})
	require.NoError(t, err)

	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description:  "Rigger",
		Days:         1,
		Rate:         2000,
		FringeRuleID: &rule.ID,
	})
	require.InDelta(t, 2200.0, line.Estimate, 1e-9)

	// Block writes to the project totals so every recompute fails
	require.NoError(t, env.db.Exec(`CREATE TRIGGER totals_locked BEFORE UPDATE OF total_budget ON projects
		BEGIN SELECT RAISE(ABORT, 'totals locked'); END`).Error)

	t.Run("percentage update reports the failed recompute", func(t *testing.T) {
		_, err := env.fringeSvc.Update(ctx, env.owner.ID, rule.ID, domain.UpdateFringeRuleRequest{
			Name:       "Payroll Tax",
			Percentage: 20,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to recompute aggregates")
	})

	t.Run("delete reports the failed recompute", func(t *testing.T) {
		err := env.fringeSvc.Delete(ctx, env.owner.ID, rule.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to recompute aggregates")
	})

	t.Run("a later full recompute heals the totals", func(t *testing.T) {
		require.NoError(t, env.db.Exec(`DROP TRIGGER totals_locked`).Error)
		require.NoError(t, env.reconciler.RecomputeProjectFull(ctx, project.ID))

		// The rule is gone, so the line is back at its unadjusted estimate
		stored := env.getLine(t, line.ID)
		assert.Nil(t, stored.FringeRuleID)
		assert.Equal(t, 2000.0, stored.Estimate)
		assert.Equal(t, 2000.0, env.getProject(t, project.ID).TotalBudget)
	})
}
