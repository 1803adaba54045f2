package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/domain"
)

// spentStatuses are the invoice statuses included in actual_spent and
// total_spent aggregates.
var spentStatuses = []domain.InvoiceStatus{
	domain.InvoiceStatusApproved,
	domain.InvoiceStatusPaid,
}

// InvoiceRepository handles database operations for invoices
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new InvoiceRepository instance
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// WithTx returns a repository bound to an open transaction
func (r *InvoiceRepository) WithTx(tx *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: tx}
}

// Create inserts a new invoice into the database
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// GetByID retrieves an invoice by its ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetByIDWithRelations retrieves an invoice with its project and payee loaded
func (r *InvoiceRepository) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Payee").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Update saves changes to an existing invoice
func (r *InvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// Delete removes an invoice from the database
func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Invoice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByProject returns all invoices assigned to a project
func (r *InvoiceRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

// ListByOwner returns all invoices on any of an owner's projects
func (r *InvoiceRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = invoices.project_id").
		Where("projects.owner_id = ?", ownerID).
		Order("invoices.created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

// SumSpentByLine sums approved/paid invoice amounts assigned to a budget line
func (r *InvoiceRepository) SumSpentByLine(ctx context.Context, lineID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("budget_line_id = ? AND status IN ?", lineID, spentStatuses).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum line invoices: %w", err)
	}
	return total, nil
}

// SumSpentByProject sums approved/paid invoice amounts for a project,
// including invoices not assigned to any budget line
func (r *InvoiceRepository) SumSpentByProject(ctx context.Context, projectID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("project_id = ? AND status IN ?", projectID, spentStatuses).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum project invoices: %w", err)
	}
	return total, nil
}
