package service

import (
	"context"
	"fmt"

	"foodforward/internal/cache"
	apperrors "foodforward/internal/errors"
	"foodforward/internal/model"
	"foodforward/internal/repository"
)

// RecipientService handles the admin-managed recipient registry.
type RecipientService interface {
	Add(ctx context.Context, role model.Role, name, contactPerson, phone, address, recipientType string) (*model.Recipient, error)
	List(ctx context.Context, role model.Role) ([]model.Recipient, error)
}

type recipientService struct {
	recipientRepo repository.RecipientRepository
	cache         *cache.Client
}

// NewRecipientService creates a new recipient service.
func NewRecipientService(recipientRepo repository.RecipientRepository, cache *cache.Client) RecipientService {
	return &recipientService{recipientRepo: recipientRepo, cache: cache}
}

// Add registers a new recipient organization.
func (s *recipientService) Add(ctx context.Context, role model.Role, name, contactPerson, phone, address, recipientType string) (*model.Recipient, error) {
	if err := requireRole(role, model.RoleAdmin); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}

	recipient := &model.Recipient{
		Name:          name,
		ContactPerson: contactPerson,
		Phone:         phone,
		Address:       address,
		RecipientType: recipientType,
	}

	if err := s.recipientRepo.Create(ctx, recipient); err != nil {
		return nil, fmt.Errorf("create recipient: %w", err)
	}

	// New recipient changes the recipient count on the admin dashboard.
	_ = s.cache.Delete(ctx, adminStatsCacheKey)

	return recipient, nil
}

// List returns all recipients in registration order.
func (s *recipientService) List(ctx context.Context, role model.Role) ([]model.Recipient, error) {
	if err := requireRole(role, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.recipientRepo.List(ctx)
}
