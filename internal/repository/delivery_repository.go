package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodforward/internal/model"
)

// DeliveryRepository defines delivery persistence operations.
//
// The donation-side helpers exist because assignment and status cascades
// mutate a delivery and its parent donation in one transaction; the closure
// passed to WithTransaction receives a repository bound to that transaction.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *model.Delivery) error
	Save(ctx context.Context, delivery *model.Delivery) error
	FindByID(ctx context.Context, id uint) (*model.Delivery, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Delivery, error)
	ListByDeliveryPerson(ctx context.Context, personID uint) ([]model.Delivery, error)
	ListActive(ctx context.Context) ([]model.Delivery, error)
	CountActive(ctx context.Context) (int64, error)
	FindDonationForUpdate(ctx context.Context, donationID uint) (*model.Donation, error)
	UpdateDonationStatus(ctx context.Context, donationID uint, status model.DonationStatus) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo DeliveryRepository) error) error
}

type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository creates a new delivery repository.
func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(ctx context.Context, delivery *model.Delivery) error {
	return r.db.WithContext(ctx).Create(delivery).Error
}

func (r *deliveryRepository) Save(ctx context.Context, delivery *model.Delivery) error {
	return r.db.WithContext(ctx).Save(delivery).Error
}

func (r *deliveryRepository) FindByID(ctx context.Context, id uint) (*model.Delivery, error) {
	var delivery model.Delivery
	if err := r.db.WithContext(ctx).First(&delivery, id).Error; err != nil {
		return nil, err
	}
	return &delivery, nil
}

// FindByIDForUpdate finds a delivery by ID with a row-level lock. Concurrent
// status updates on the same delivery serialize on this lock, so the second
// writer sees the first writer's committed status.
func (r *deliveryRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Delivery, error) {
	var delivery model.Delivery
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&delivery, id).Error; err != nil {
		return nil, err
	}
	return &delivery, nil
}

// ListByDeliveryPerson returns a courier's deliveries, newest first.
func (r *deliveryRepository) ListByDeliveryPerson(ctx context.Context, personID uint) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	if err := r.db.WithContext(ctx).Where("delivery_person_id = ?", personID).
		Preload("Donation").Preload("Recipient").
		Order("created_at DESC").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// ListActive returns undelivered deliveries in arrival order.
func (r *deliveryRepository) ListActive(ctx context.Context) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	if err := r.db.WithContext(ctx).Where("status <> ?", model.DeliveryStatusDelivered).
		Preload("Donation").Preload("Recipient").
		Order("created_at ASC").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *deliveryRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Delivery{}).
		Where("status <> ?", model.DeliveryStatusDelivered).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindDonationForUpdate locks the parent donation row for the duration of the
// surrounding transaction.
func (r *deliveryRepository) FindDonationForUpdate(ctx context.Context, donationID uint) (*model.Donation, error) {
	var donation model.Donation
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&donation, donationID).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *deliveryRepository) UpdateDonationStatus(ctx context.Context, donationID uint, status model.DonationStatus) error {
	return r.db.WithContext(ctx).Model(&model.Donation{}).
		Where("id = ?", donationID).
		Update("status", status).Error
}

// WithTransaction executes a function within a database transaction.
func (r *deliveryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo DeliveryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &deliveryRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
