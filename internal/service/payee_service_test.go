package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/service"
	"github.com/slateworks/budget-api/internal/testutil"
)

func TestPayeeService_CRUD(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		created, err := env.payeeSvc.Create(ctx, env.owner.ID, domain.CreatePayeeRequest{
			Name:    "Lars Moen",
			Email:   "lars@crewmail.com",
			Phone:   "99887766",
			Company: "Moen Lys AS",
		})
		require.NoError(t, err)
		assert.True(t, created.IsActive)

		got, err := env.payeeSvc.GetByID(ctx, env.owner.ID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lars Moen", got.Name)
		assert.Equal(t, "Moen Lys AS", got.Company)
	})

	t.Run("update can deactivate", func(t *testing.T) {
		created, err := env.payeeSvc.Create(ctx, env.owner.ID, domain.CreatePayeeRequest{
			Name:  "Ida Strand",
			Email: "ida@crewmail.com",
		})
		require.NoError(t, err)

		inactive := false
		updated, err := env.payeeSvc.Update(ctx, env.owner.ID, created.ID, domain.UpdatePayeeRequest{
			Name:     "Ida Strand",
			Email:    "ida@crewmail.com",
			IsActive: &inactive,
		})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
	})

	t.Run("delete", func(t *testing.T) {
		created, err := env.payeeSvc.Create(ctx, env.owner.ID, domain.CreatePayeeRequest{
			Name:  "Gone Soon",
			Email: "gone@crewmail.com",
		})
		require.NoError(t, err)

		require.NoError(t, env.payeeSvc.Delete(ctx, env.owner.ID, created.ID))

		_, err = env.payeeSvc.GetByID(ctx, env.owner.ID, created.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("another owner's payee reads as not found", func(t *testing.T) {
		created, err := env.payeeSvc.Create(ctx, env.owner.ID, domain.CreatePayeeRequest{
			Name:  "Hidden",
			Email: "hidden@crewmail.com",
		})
		require.NoError(t, err)

		stranger := testutil.CreateTestUser(t, env.db, "peeker@example.com")
		_, err = env.payeeSvc.GetByID(ctx, stranger.ID, created.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestPayeeImportService_Disabled(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	svc := service.NewPayeeImportService(nil, env.payeeRepo, zap.NewNop())

	assert.False(t, svc.Enabled())

	imported, err := svc.ImportForOwner(ctx, env.owner.ID)
	assert.Equal(t, 0, imported)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
