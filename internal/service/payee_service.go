package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/mapper"
	"github.com/slateworks/budget-api/internal/repository"
)

// PayeeService handles business logic for payees
type PayeeService struct {
	payeeRepo *repository.PayeeRepository
	logger    *zap.Logger
}

// NewPayeeService creates a new PayeeService instance
func NewPayeeService(payeeRepo *repository.PayeeRepository, logger *zap.Logger) *PayeeService {
	return &PayeeService{payeeRepo: payeeRepo, logger: logger}
}

// Create adds a payee for an owner
func (s *PayeeService) Create(ctx context.Context, ownerID uuid.UUID, req domain.CreatePayeeRequest) (*domain.PayeeDTO, error) {
	payee := &domain.Payee{
		OwnerID:  ownerID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		IsActive: true,
	}
	if err := s.payeeRepo.Create(ctx, payee); err != nil {
		s.logger.Error("Failed to create payee", zap.Error(err))
		return nil, fmt.Errorf("failed to create payee: %w", err)
	}
	dto := mapper.ToPayeeDTO(payee)
	return &dto, nil
}

// GetByID retrieves an owner's payee
func (s *PayeeService) GetByID(ctx context.Context, ownerID, payeeID uuid.UUID) (*domain.PayeeDTO, error) {
	payee, err := s.getOwned(ctx, ownerID, payeeID)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToPayeeDTO(payee)
	return &dto, nil
}

// List returns all of an owner's payees
func (s *PayeeService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.PayeeDTO, error) {
	payees, err := s.payeeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to list payees", zap.Error(err))
		return nil, fmt.Errorf("failed to list payees: %w", err)
	}
	dtos := make([]domain.PayeeDTO, len(payees))
	for i := range payees {
		dtos[i] = mapper.ToPayeeDTO(&payees[i])
	}
	return dtos, nil
}

// Update saves changes to an owner's payee
func (s *PayeeService) Update(ctx context.Context, ownerID, payeeID uuid.UUID, req domain.UpdatePayeeRequest) (*domain.PayeeDTO, error) {
	payee, err := s.getOwned(ctx, ownerID, payeeID)
	if err != nil {
		return nil, err
	}
	payee.Name = req.Name
	payee.Email = req.Email
	payee.Phone = req.Phone
	payee.Company = req.Company
	if req.IsActive != nil {
		payee.IsActive = *req.IsActive
	}
	if err := s.payeeRepo.Update(ctx, payee); err != nil {
		s.logger.Error("Failed to update payee", zap.Error(err))
		return nil, fmt.Errorf("failed to update payee: %w", err)
	}
	dto := mapper.ToPayeeDTO(payee)
	return &dto, nil
}

// Delete removes an owner's payee
func (s *PayeeService) Delete(ctx context.Context, ownerID, payeeID uuid.UUID) error {
	payee, err := s.getOwned(ctx, ownerID, payeeID)
	if err != nil {
		return err
	}
	if err := s.payeeRepo.Delete(ctx, payee.ID); err != nil {
		s.logger.Error("Failed to delete payee", zap.Error(err))
		return fmt.Errorf("failed to delete payee: %w", err)
	}
	return nil
}

func (s *PayeeService) getOwned(ctx context.Context, ownerID, payeeID uuid.UUID) (*domain.Payee, error) {
	payee, err := s.payeeRepo.GetByID(ctx, payeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payee %s: %w", payeeID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payee: %w", err)
	}
	if payee.OwnerID != ownerID {
		return nil, fmt.Errorf("payee %s: %w", payeeID, ErrNotFound)
	}
	return payee, nil
}
