package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/jobs"
)

type fakeSweeper struct {
	sweptIDs []uuid.UUID
	calls    int
	err      error
}

func (f *fakeSweeper) SweepProjects(ctx context.Context, projectIDs []uuid.UUID) (int, error) {
	f.calls++
	f.sweptIDs = projectIDs
	if f.err != nil {
		return 0, f.err
	}
	return len(projectIDs), nil
}

type fakeProjectLister struct {
	ids    []uuid.UUID
	status domain.ProjectStatus
	err    error
}

func (f *fakeProjectLister) ListIDsByStatus(ctx context.Context, status domain.ProjectStatus) ([]uuid.UUID, error) {
	f.status = status
	return f.ids, f.err
}

func TestReconcileSweepJob_Run(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	sweeper := &fakeSweeper{}
	lister := &fakeProjectLister{ids: ids}

	job := jobs.NewReconcileSweepJob(sweeper, lister, zap.NewNop(), time.Minute)
	job.Run()

	assert.Equal(t, domain.ProjectStatusActive, lister.status, "sweep should target active projects")
	assert.Equal(t, 1, sweeper.calls)
	assert.Equal(t, ids, sweeper.sweptIDs)
}

func TestReconcileSweepJob_ListFailureSkipsSweep(t *testing.T) {
	sweeper := &fakeSweeper{}
	lister := &fakeProjectLister{err: errors.New("db down")}

	job := jobs.NewReconcileSweepJob(sweeper, lister, zap.NewNop(), time.Minute)
	job.Run()

	assert.Equal(t, 0, sweeper.calls)
}

func TestReconcileSweepJob_SweepFailureIsLoggedNotFatal(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("sweep failed")}
	lister := &fakeProjectLister{ids: []uuid.UUID{uuid.New()}}

	job := jobs.NewReconcileSweepJob(sweeper, lister, zap.NewNop(), time.Minute)

	assert.NotPanics(t, func() { job.Run() })
	assert.Equal(t, 1, sweeper.calls)
}

type fakeImporter struct {
	enabled  bool
	imported map[uuid.UUID]int
	failFor  map[uuid.UUID]error
	calls    []uuid.UUID
}

func (f *fakeImporter) Enabled() bool { return f.enabled }

func (f *fakeImporter) ImportForOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	f.calls = append(f.calls, ownerID)
	if err, ok := f.failFor[ownerID]; ok {
		return 0, err
	}
	return f.imported[ownerID], nil
}

type fakeOwnerLister struct {
	ids []uuid.UUID
	err error
}

func (f *fakeOwnerLister) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	return f.ids, f.err
}

func TestPayeeImportJob_Run(t *testing.T) {
	ownerA := uuid.New()
	ownerB := uuid.New()

	importer := &fakeImporter{
		enabled:  true,
		imported: map[uuid.UUID]int{ownerA: 3, ownerB: 2},
	}
	owners := &fakeOwnerLister{ids: []uuid.UUID{ownerA, ownerB}}

	job := jobs.NewPayeeImportJob(importer, owners, zap.NewNop(), time.Minute)
	job.Run()

	assert.Equal(t, []uuid.UUID{ownerA, ownerB}, importer.calls)
}

func TestPayeeImportJob_DisabledImporterSkipsEverything(t *testing.T) {
	importer := &fakeImporter{enabled: false}
	owners := &fakeOwnerLister{ids: []uuid.UUID{uuid.New()}}

	job := jobs.NewPayeeImportJob(importer, owners, zap.NewNop(), time.Minute)
	job.Run()

	assert.Empty(t, importer.calls)
}

func TestPayeeImportJob_FailingOwnerDoesNotStopOthers(t *testing.T) {
	ownerA := uuid.New()
	ownerB := uuid.New()
	ownerC := uuid.New()

	importer := &fakeImporter{
		enabled:  true,
		imported: map[uuid.UUID]int{ownerA: 1, ownerC: 4},
		failFor:  map[uuid.UUID]error{ownerB: errors.New("erp timeout")},
	}
	owners := &fakeOwnerLister{ids: []uuid.UUID{ownerA, ownerB, ownerC}}

	job := jobs.NewPayeeImportJob(importer, owners, zap.NewNop(), time.Minute)
	job.Run()

	assert.Len(t, importer.calls, 3, "every owner should be attempted")
}

func TestScheduler_AddAndRemoveJobs(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("nightly", "0 3 * * *", func() {}))
	require.NoError(t, s.AddJob("hourly", "@hourly", func() {}))

	assert.ElementsMatch(t, []string{"nightly", "hourly"}, s.GetJobNames())

	t.Run("duplicate name rejected", func(t *testing.T) {
		assert.Error(t, s.AddJob("nightly", "0 4 * * *", func() {}))
	})

	t.Run("invalid cron expression rejected", func(t *testing.T) {
		assert.Error(t, s.AddJob("broken", "not a cron expr", func() {}))
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, s.RemoveJob("hourly"))
		assert.ElementsMatch(t, []string{"nightly"}, s.GetJobNames())
		assert.Error(t, s.RemoveJob("hourly"))
	})
}
