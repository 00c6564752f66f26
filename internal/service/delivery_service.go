package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"foodforward/internal/cache"
	apperrors "foodforward/internal/errors"
	"foodforward/internal/model"
	"foodforward/internal/repository"
)

// DeliveryService handles delivery assignment and status updates.
type DeliveryService interface {
	Assign(ctx context.Context, role model.Role, donationID, deliveryPersonID, recipientID uint) (*model.Delivery, error)
	ListOwn(ctx context.Context, courierID uint, role model.Role) ([]model.Delivery, error)
	UpdateStatus(ctx context.Context, courierID uint, role model.Role, deliveryID uint, newStatus model.DeliveryStatus, confirmationType, confirmationData string) (*model.Delivery, error)
}

type deliveryService struct {
	deliveryRepo  repository.DeliveryRepository
	userRepo      repository.UserRepository
	recipientRepo repository.RecipientRepository
	cache         *cache.Client
}

// NewDeliveryService creates a new delivery service.
func NewDeliveryService(
	deliveryRepo repository.DeliveryRepository,
	userRepo repository.UserRepository,
	recipientRepo repository.RecipientRepository,
	cache *cache.Client,
) DeliveryService {
	return &deliveryService{
		deliveryRepo:  deliveryRepo,
		userRepo:      userRepo,
		recipientRepo: recipientRepo,
		cache:         cache,
	}
}

// Assign creates a delivery for a pending donation and moves the donation to
// assigned. Both writes happen in one transaction with the donation row
// locked, so two admins racing on the same donation cannot both succeed.
func (s *deliveryService) Assign(ctx context.Context, role model.Role, donationID, deliveryPersonID, recipientID uint) (*model.Delivery, error) {
	if err := requireRole(role, model.RoleAdmin); err != nil {
		return nil, err
	}

	if deliveryPersonID == 0 || recipientID == 0 {
		return nil, apperrors.ErrMissingSelection
	}

	courier, err := s.userRepo.FindByID(ctx, deliveryPersonID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: delivery person", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("load delivery person: %w", err)
	}
	if courier.Role != model.RoleDelivery {
		return nil, fmt.Errorf("%w: user %d is not a delivery person", apperrors.ErrValidation, deliveryPersonID)
	}

	if _, err := s.recipientRepo.FindByID(ctx, recipientID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: recipient", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("load recipient: %w", err)
	}

	delivery := &model.Delivery{
		DonationID:       donationID,
		DeliveryPersonID: deliveryPersonID,
		RecipientID:      recipientID,
		Status:           model.DeliveryStatusAssigned,
	}

	err = s.deliveryRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.DeliveryRepository) error {
		donation, err := txRepo.FindDonationForUpdate(ctx, donationID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrNotFound
			}
			return err
		}
		if donation.Status != model.DonationStatusPending {
			return apperrors.ErrInvalidState
		}
		if err := txRepo.Create(ctx, delivery); err != nil {
			return err
		}
		return txRepo.UpdateDonationStatus(ctx, donationID, model.DonationStatusAssigned)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return delivery, nil
}

// ListOwn returns the courier's deliveries, newest first.
func (s *deliveryService) ListOwn(ctx context.Context, courierID uint, role model.Role) ([]model.Delivery, error) {
	if err := requireRole(role, model.RoleDelivery); err != nil {
		return nil, err
	}
	return s.deliveryRepo.ListByDeliveryPerson(ctx, courierID)
}

// UpdateStatus advances a delivery's status. Only the owning courier may
// update it. Moving to picked_up stamps the pickup time and cascades the
// donation to in_transit; moving to delivered stamps the delivery time,
// records the confirmation and cascades the donation to delivered. The
// cascade runs in the same transaction as the delivery write.
func (s *deliveryService) UpdateStatus(ctx context.Context, courierID uint, role model.Role, deliveryID uint, newStatus model.DeliveryStatus, confirmationType, confirmationData string) (*model.Delivery, error) {
	if err := requireRole(role, model.RoleDelivery); err != nil {
		return nil, err
	}

	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown delivery status %q", apperrors.ErrValidation, newStatus)
	}

	var delivery *model.Delivery
	err := s.deliveryRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.DeliveryRepository) error {
		var err error
		delivery, err = txRepo.FindByIDForUpdate(ctx, deliveryID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrNotFound
			}
			return err
		}
		if delivery.DeliveryPersonID != courierID {
			return apperrors.ErrAccessDenied
		}
		if !delivery.Status.CanTransition(newStatus) {
			return apperrors.ErrInvalidState
		}

		delivery.Status = newStatus
		switch newStatus {
		case model.DeliveryStatusPickedUp:
			now := time.Now()
			delivery.PickupTime = &now
			if err := txRepo.UpdateDonationStatus(ctx, delivery.DonationID, model.DonationStatusInTransit); err != nil {
				return err
			}
		case model.DeliveryStatusDelivered:
			now := time.Now()
			delivery.DeliveryTime = &now
			delivery.ConfirmationType = confirmationType
			delivery.ConfirmationData = confirmationData
			if err := txRepo.UpdateDonationStatus(ctx, delivery.DonationID, model.DonationStatusDelivered); err != nil {
				return err
			}
		}

		return txRepo.Save(ctx, delivery)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return delivery, nil
}

func (s *deliveryService) invalidateStats(ctx context.Context) {
	_ = s.cache.Delete(ctx, adminStatsCacheKey)
}
