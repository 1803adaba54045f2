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

func TestBudgetLineService_Create(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Line Numbers", "LN-01", "FLAT_RATE")

	t.Run("line numbers continue the sequence", func(t *testing.T) {
		first := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{Description: "First"})
		second := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{Description: "Second"})
		assert.Equal(t, 1, first.LineNumber)
		assert.Equal(t, 2, second.LineNumber)
	})

	t.Run("category defaults to production", func(t *testing.T) {
		line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{Description: "Uncategorized"})
		assert.Equal(t, domain.CategoryProduction, line.Category)
	})

	t.Run("estimate is derived before the first write", func(t *testing.T) {
		line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
			Description: "Steadicam Operator",
			Days:        3,
			Rate:        1200,
			OT2:         1,
		})
		// 3600 + 1*1200*2
		assert.Equal(t, 6000.0, line.Estimate)
		assert.Equal(t, 6000.0, env.getLine(t, line.ID).Estimate)
	})

	t.Run("project totals follow the new line", func(t *testing.T) {
		fresh := env.createProject(t, ctx, "Totals Follow", "TF-01", "FLAT_RATE")
		env.createLine(t, ctx, fresh.ID, domain.CreateBudgetLineRequest{Days: 2, Rate: 500})
		assert.Equal(t, 1000.0, env.getProject(t, fresh.ID).TotalBudget)
	})
}

func TestBudgetLineService_Update(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Edit Lines", "EL-01", "FLAT_RATE")
	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description: "Focus Puller", Days: 4, Rate: 600,
	})

	t.Run("estimate is re-derived from raw inputs", func(t *testing.T) {
		updated, err := env.lineSvc.Update(ctx, env.owner.ID, line.ID, domain.UpdateBudgetLineRequest{
			Description: "Focus Puller",
			Days:        6,
			Rate:        600,
			OT15:        2,
		})
		require.NoError(t, err)
		// 3600 + 2*600*1.5
		assert.Equal(t, 5400.0, updated.Estimate)
		assert.Equal(t, 5400.0, env.getProject(t, project.ID).TotalBudget)
	})

	t.Run("running amount is stored as given", func(t *testing.T) {
		updated, err := env.lineSvc.Update(ctx, env.owner.ID, line.ID, domain.UpdateBudgetLineRequest{
			Description:   "Focus Puller",
			Days:          6,
			Rate:          600,
			RunningAmount: 1234.56,
		})
		require.NoError(t, err)
		assert.Equal(t, 1234.56, updated.RunningAmount)
		assert.Equal(t, 3600.0, updated.Estimate)
	})
}

func TestBudgetLineService_AssignFringe(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Fringe Project", "FP-01", "FLAT_RATE")
	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{
		Description: "Makeup Artist", Days: 5, Rate: 500,
	})

	rule, err := env.fringeSvc.Create(ctx, env.owner.ID, project.ID, domain.CreateFringeRuleRequest{
		Name:       "Payroll Tax",
		Percentage: 14.1,
	})
	require.NoError(t, err)

	t.Run("fringe applies on top of the base estimate", func(t *testing.T) {
		updated, err := env.lineSvc.AssignFringe(ctx, env.owner.ID, line.ID, &rule.ID)
		require.NoError(t, err)
		assert.InDelta(t, 2852.5, updated.Estimate, 1e-9)
		assert.InDelta(t, 2852.5, env.getProject(t, project.ID).TotalBudget, 1e-9)
	})

	t.Run("reassignment never compounds", func(t *testing.T) {
		// Assigning the same rule again starts from the unadjusted base
		updated, err := env.lineSvc.AssignFringe(ctx, env.owner.ID, line.ID, &rule.ID)
		require.NoError(t, err)
		assert.InDelta(t, 2852.5, updated.Estimate, 1e-9)
	})

	t.Run("clearing resets to the unadjusted estimate", func(t *testing.T) {
		updated, err := env.lineSvc.AssignFringe(ctx, env.owner.ID, line.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, 2500.0, updated.Estimate)
		assert.Equal(t, 2500.0, env.getProject(t, project.ID).TotalBudget)
	})

	t.Run("rule from another project is refused", func(t *testing.T) {
		other := env.createProject(t, ctx, "Other Project", "OP-01", "FLAT_RATE")
		foreign, err := env.fringeSvc.Create(ctx, env.owner.ID, other.ID, domain.CreateFringeRuleRequest{
			Name: "Foreign", Percentage: 10,
		})
		require.NoError(t, err)

		_, err = env.lineSvc.AssignFringe(ctx, env.owner.ID, line.ID, &foreign.ID)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestBudgetLineService_Reorder(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Reorder", "RO-01", "FLAT_RATE")
	a := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{Description: "A"})
	b := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{Description: "B"})
	c := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{Description: "C"})

	t.Run("renumbers to the given order", func(t *testing.T) {
		err := env.lineSvc.Reorder(ctx, env.owner.ID, project.ID, []uuid.UUID{c.ID, a.ID, b.ID})
		require.NoError(t, err)

		assert.Equal(t, 1, env.getLine(t, c.ID).LineNumber)
		assert.Equal(t, 2, env.getLine(t, a.ID).LineNumber)
		assert.Equal(t, 3, env.getLine(t, b.ID).LineNumber)
	})

	t.Run("line from another project is refused", func(t *testing.T) {
		other := env.createProject(t, ctx, "Elsewhere", "EW-01", "FLAT_RATE")
		foreign := env.createLine(t, ctx, other.ID, domain.CreateBudgetLineRequest{Description: "X"})

		err := env.lineSvc.Reorder(ctx, env.owner.ID, project.ID, []uuid.UUID{a.ID, foreign.ID})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("unknown line is not found", func(t *testing.T) {
		err := env.lineSvc.Reorder(ctx, env.owner.ID, project.ID, []uuid.UUID{uuid.New()})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestBudgetLineService_Delete(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Shrinking", "SH-01", "FLAT_RATE")
	keep := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{Days: 1, Rate: 1000})
	drop := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{Days: 1, Rate: 400})
	require.Equal(t, 1400.0, env.getProject(t, project.ID).TotalBudget)

	require.NoError(t, env.lineSvc.Delete(ctx, env.owner.ID, drop.ID))

	assert.Equal(t, 1000.0, env.getProject(t, project.ID).TotalBudget)
	assert.Equal(t, 1000.0, env.getLine(t, keep.ID).Estimate)

	_, err := env.lineSvc.GetByID(ctx, env.owner.ID, drop.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestBudgetLineService_PayeeOwnership(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Payee Hints", "PH-01", "FLAT_RATE")
	line := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{Description: "Gaffer"})

	mine := testutil.CreateTestPayee(t, env.db, env.owner.ID, "Ours", "ours@crewmail.com")
	stranger := testutil.CreateTestUser(t, env.db, "other@example.com")
	foreign := testutil.CreateTestPayee(t, env.db, stranger.ID, "Theirs", "theirs@crewmail.com")

	t.Run("own payee is accepted", func(t *testing.T) {
		updated, err := env.lineSvc.Update(ctx, env.owner.ID, line.ID, domain.UpdateBudgetLineRequest{
			Description: "Gaffer",
			PayeeID:     &mine.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.PayeeID)
		assert.Equal(t, mine.ID, *updated.PayeeID)
	})

	t.Run("another owner's payee on update reads as not found", func(t *testing.T) {
		_, err := env.lineSvc.Update(ctx, env.owner.ID, line.ID, domain.UpdateBudgetLineRequest{
			Description: "Gaffer",
			PayeeID:     &foreign.ID,
		})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("another owner's payee on create reads as not found", func(t *testing.T) {
		_, err := env.lineSvc.Create(ctx, env.owner.ID, project.ID, domain.CreateBudgetLineRequest{
			Description: "Best Boy",
			PayeeID:     &foreign.ID,
		})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("unknown payee reads as not found", func(t *testing.T) {
		unknown := uuid.New()
		_, err := env.lineSvc.Update(ctx, env.owner.ID, line.ID, domain.UpdateBudgetLineRequest{
			Description: "Gaffer",
			PayeeID:     &unknown,
		})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestBudgetLineService_AggregateFailurePropagates(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	project := env.createProject(t, ctx, "Locked Totals", "LT-01", "FLAT_RATE")
	keep := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{Days: 1, Rate: 300})
	target := env.createLine(t, ctx, project.ID, domain.CreateBudgetLineRequest{Days: 2, Rate: 500})
	require.Equal(t, 1300.0, env.getProject(t, project.ID).TotalBudget)

	// Block writes to the project totals so every recompute fails
	require.NoError(t, env.db.Exec(`CREATE TRIGGER totals_locked BEFORE UPDATE OF total_budget ON projects
		BEGIN SELECT RAISE(ABORT, 'totals locked'); END`).Error)

	t.Run("create reports the failed recompute", func(t *testing.T) {
		_, err := env.lineSvc.Create(ctx, env.owner.ID, project.ID, domain.CreateBudgetLineRequest{
			Days: 1, Rate: 100,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to recompute aggregates")
	})

	t.Run("update reports the failed recompute", func(t *testing.T) {
		_, err := env.lineSvc.Update(ctx, env.owner.ID, target.ID, domain.UpdateBudgetLineRequest{
			Days: 4, Rate: 500,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to recompute aggregates")
	})

	t.Run("delete reports the failed recompute", func(t *testing.T) {
		err := env.lineSvc.Delete(ctx, env.owner.ID, target.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to recompute aggregates")
	})

	t.Run("a later full recompute heals the totals", func(t *testing.T) {
		require.NoError(t, env.db.Exec(`DROP TRIGGER totals_locked`).Error)
		require.NoError(t, env.reconciler.RecomputeProjectFull(ctx, project.ID))

		// keep (300) plus the line inserted by the failed create (100)
		assert.Equal(t, 400.0, env.getProject(t, project.ID).TotalBudget)
		assert.Equal(t, 300.0, env.getLine(t, keep.ID).Estimate)
	})
}
