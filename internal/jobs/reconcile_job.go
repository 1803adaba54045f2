package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slateworks/budget-api/internal/domain"
)

// ReconcileSweepJobName is the name of the nightly reconciliation sweep job
const ReconcileSweepJobName = "reconcile_sweep"

// ProjectSweeper re-derives the stored aggregates for a set of projects.
type ProjectSweeper interface {
	SweepProjects(ctx context.Context, projectIDs []uuid.UUID) (int, error)
}

// ProjectLister returns project IDs by status.
type ProjectLister interface {
	ListIDsByStatus(ctx context.Context, status domain.ProjectStatus) ([]uuid.UUID, error)
}

// ReconcileSweepJob recomputes every active project's derived fields from the
// underlying invoices and estimates. The sweep is idempotent, so drift from a
// missed event-driven recompute heals on the next run.
type ReconcileSweepJob struct {
	sweeper ProjectSweeper
	lister  ProjectLister
	logger  *zap.Logger
	timeout time.Duration
}

// NewReconcileSweepJob creates a new reconciliation sweep job.
func NewReconcileSweepJob(sweeper ProjectSweeper, lister ProjectLister, logger *zap.Logger, timeout time.Duration) *ReconcileSweepJob {
	return &ReconcileSweepJob{
		sweeper: sweeper,
		lister:  lister,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the sweep. This is called by the scheduler according to the
// cron expression.
func (j *ReconcileSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting reconciliation sweep")

	ids, err := j.lister.ListIDsByStatus(ctx, domain.ProjectStatusActive)
	if err != nil {
		j.logger.Error("failed to list active projects for sweep",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	swept, err := j.sweeper.SweepProjects(ctx, ids)
	if err != nil {
		j.logger.Error("reconciliation sweep failed",
			zap.Error(err),
			zap.Int("swept", swept),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("reconciliation sweep completed",
		zap.Int("projects", len(ids)),
		zap.Int("swept", swept),
		zap.Duration("duration", time.Since(start)))
}

// RegisterReconcileSweepJob registers the sweep with the scheduler.
func RegisterReconcileSweepJob(scheduler *Scheduler, sweeper ProjectSweeper, lister ProjectLister, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewReconcileSweepJob(sweeper, lister, logger, timeout)
	return scheduler.AddJob(ReconcileSweepJobName, cronExpr, job.Run)
}
