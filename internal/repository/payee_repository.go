package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/domain"
)

// PayeeRepository handles database operations for payees
type PayeeRepository struct {
	db *gorm.DB
}

// NewPayeeRepository creates a new PayeeRepository instance
func NewPayeeRepository(db *gorm.DB) *PayeeRepository {
	return &PayeeRepository{db: db}
}

// Create inserts a new payee into the database
func (r *PayeeRepository) Create(ctx context.Context, payee *domain.Payee) error {
	return r.db.WithContext(ctx).Create(payee).Error
}

// GetByID retrieves a payee by its ID
func (r *PayeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payee, error) {
	var payee domain.Payee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payee).Error
	if err != nil {
		return nil, err
	}
	return &payee, nil
}

// GetByEmail retrieves a payee by case-insensitive exact email match. This is
// the matching key for external submissions.
func (r *PayeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Payee, error) {
	var payee domain.Payee
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		Order("created_at ASC").
		First(&payee).Error
	if err != nil {
		return nil, err
	}
	return &payee, nil
}

// Update saves changes to an existing payee
func (r *PayeeRepository) Update(ctx context.Context, payee *domain.Payee) error {
	return r.db.WithContext(ctx).Save(payee).Error
}

// Delete removes a payee from the database
func (r *PayeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Payee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOwner returns all payees belonging to an owner
func (r *PayeeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Payee, error) {
	var payees []domain.Payee
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&payees).Error
	return payees, err
}

// GetByOwnerAndEmail retrieves an owner's payee by case-insensitive email.
// Used by the ERP import to detect already-imported payees.
func (r *PayeeRepository) GetByOwnerAndEmail(ctx context.Context, ownerID uuid.UUID, email string) (*domain.Payee, error) {
	var payee domain.Payee
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND LOWER(email) = LOWER(?)", ownerID, email).
		First(&payee).Error
	if err != nil {
		return nil, err
	}
	return &payee, nil
}
