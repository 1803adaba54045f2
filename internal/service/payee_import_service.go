package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/erp"
	"github.com/slateworks/budget-api/internal/repository"
)

// PayeeImportService imports vendor contacts from the accounting system as
// payees. Email is the dedupe key; existing payees are left untouched.
type PayeeImportService struct {
	erpClient *erp.Client
	payeeRepo *repository.PayeeRepository
	logger    *zap.Logger
}

// NewPayeeImportService creates a new PayeeImportService instance
func NewPayeeImportService(erpClient *erp.Client, payeeRepo *repository.PayeeRepository, logger *zap.Logger) *PayeeImportService {
	return &PayeeImportService{
		erpClient: erpClient,
		payeeRepo: payeeRepo,
		logger:    logger,
	}
}

// Enabled reports whether an ERP connection is available
func (s *PayeeImportService) Enabled() bool {
	return s.erpClient != nil
}

// ImportForOwner pulls vendors from the accounting system and creates any
// payee the owner does not have yet. Returns the number imported.
func (s *PayeeImportService) ImportForOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	if s.erpClient == nil {
		return 0, fmt.Errorf("erp import not enabled: %w", ErrInvalidInput)
	}

	vendors, err := s.erpClient.ListVendors(ctx)
	if err != nil {
		s.logger.Error("Failed to list ERP vendors", zap.Error(err))
		return 0, fmt.Errorf("failed to list vendors: %w", err)
	}

	imported := 0
	for _, vendor := range vendors {
		_, err := s.payeeRepo.GetByOwnerAndEmail(ctx, ownerID, vendor.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return imported, fmt.Errorf("failed to check existing payee: %w", err)
		}

		payee := &domain.Payee{
			OwnerID:  ownerID,
			Name:     vendor.Name,
			Email:    vendor.Email,
			Phone:    vendor.Phone,
			Company:  vendor.Company,
			IsActive: true,
		}
		if err := s.payeeRepo.Create(ctx, payee); err != nil {
			s.logger.Warn("Failed to import vendor",
				zap.String("vendorName", vendor.Name),
				zap.Error(err))
			continue
		}
		imported++
	}

	s.logger.Info("Payee import finished",
		zap.String("ownerId", ownerID.String()),
		zap.Int("vendors", len(vendors)),
		zap.Int("imported", imported))

	return imported, nil
}
