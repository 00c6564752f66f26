package repository

import (
	"context"

	"gorm.io/gorm"

	"foodforward/internal/model"
)

// DonationRepository defines donation persistence operations.
type DonationRepository interface {
	Create(ctx context.Context, donation *model.Donation) error
	FindByID(ctx context.Context, id uint) (*model.Donation, error)
	ListByDonor(ctx context.Context, donorID uint) ([]model.Donation, error)
	ListPending(ctx context.Context) ([]model.Donation, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.DonationStatus) (int64, error)
}

type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository.
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *model.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) FindByID(ctx context.Context, id uint) (*model.Donation, error) {
	var donation model.Donation
	if err := r.db.WithContext(ctx).Preload("Delivery").First(&donation, id).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

// ListByDonor returns a donor's donations, newest first.
func (r *donationRepository) ListByDonor(ctx context.Context, donorID uint) ([]model.Donation, error) {
	var donations []model.Donation
	if err := r.db.WithContext(ctx).Where("donor_id = ?", donorID).
		Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// ListPending returns unassigned donations in arrival order for the admin queue.
func (r *donationRepository) ListPending(ctx context.Context) ([]model.Donation, error) {
	var donations []model.Donation
	if err := r.db.WithContext(ctx).Where("status = ?", model.DonationStatusPending).
		Order("created_at ASC").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Donation{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *donationRepository) CountByStatus(ctx context.Context, status model.DonationStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Donation{}).
		Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
