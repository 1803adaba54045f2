package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PayeeImportJobName is the name of the scheduled payee import job
const PayeeImportJobName = "payee_import"

// PayeeImporter imports accounting system vendors as payees for one owner.
type PayeeImporter interface {
	Enabled() bool
	ImportForOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

// OwnerLister returns the IDs of the users to import for.
type OwnerLister interface {
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
}

// PayeeImportJob pulls vendor contacts from the accounting system for every
// active user. A failing owner does not stop the rest.
type PayeeImportJob struct {
	importer PayeeImporter
	owners   OwnerLister
	logger   *zap.Logger
	timeout  time.Duration
}

// NewPayeeImportJob creates a new payee import job.
func NewPayeeImportJob(importer PayeeImporter, owners OwnerLister, logger *zap.Logger, timeout time.Duration) *PayeeImportJob {
	return &PayeeImportJob{
		importer: importer,
		owners:   owners,
		logger:   logger,
		timeout:  timeout,
	}
}

// Run executes the import for every active user.
func (j *PayeeImportJob) Run() {
	if !j.importer.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting scheduled payee import")

	ownerIDs, err := j.owners.ListActiveIDs(ctx)
	if err != nil {
		j.logger.Error("failed to list users for payee import", zap.Error(err))
		return
	}

	total := 0
	failed := 0
	for _, ownerID := range ownerIDs {
		imported, err := j.importer.ImportForOwner(ctx, ownerID)
		if err != nil {
			j.logger.Error("payee import failed for owner",
				zap.String("owner_id", ownerID.String()),
				zap.Error(err))
			failed++
			continue
		}
		total += imported
	}

	j.logger.Info("scheduled payee import completed",
		zap.Int("owners", len(ownerIDs)),
		zap.Int("imported", total),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)))
}

// RegisterPayeeImportJob registers the payee import with the scheduler.
func RegisterPayeeImportJob(scheduler *Scheduler, importer PayeeImporter, owners OwnerLister, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewPayeeImportJob(importer, owners, logger, timeout)
	return scheduler.AddJob(PayeeImportJobName, cronExpr, job.Run)
}
