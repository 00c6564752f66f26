package repository

import (
	"context"

	"gorm.io/gorm"

	"foodforward/internal/model"
)

// RecipientRepository defines recipient persistence operations.
type RecipientRepository interface {
	Create(ctx context.Context, recipient *model.Recipient) error
	FindByID(ctx context.Context, id uint) (*model.Recipient, error)
	List(ctx context.Context) ([]model.Recipient, error)
	Count(ctx context.Context) (int64, error)
}

type recipientRepository struct {
	db *gorm.DB
}

// NewRecipientRepository creates a new recipient repository.
func NewRecipientRepository(db *gorm.DB) RecipientRepository {
	return &recipientRepository{db: db}
}

func (r *recipientRepository) Create(ctx context.Context, recipient *model.Recipient) error {
	return r.db.WithContext(ctx).Create(recipient).Error
}

func (r *recipientRepository) FindByID(ctx context.Context, id uint) (*model.Recipient, error) {
	var recipient model.Recipient
	if err := r.db.WithContext(ctx).First(&recipient, id).Error; err != nil {
		return nil, err
	}
	return &recipient, nil
}

func (r *recipientRepository) List(ctx context.Context) ([]model.Recipient, error) {
	var recipients []model.Recipient
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recipients).Error; err != nil {
		return nil, err
	}
	return recipients, nil
}

func (r *recipientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Recipient{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
