package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"foodforward/internal/cache"
	apperrors "foodforward/internal/errors"
	"foodforward/internal/model"
	"foodforward/internal/repository"
)

// DonationService handles donor-side donation operations.
type DonationService interface {
	Add(ctx context.Context, donorID uint, role model.Role, foodType, quantity, freshness, pickupLocation string) (*model.Donation, error)
	ListOwn(ctx context.Context, donorID uint, role model.Role) ([]model.Donation, error)
	Get(ctx context.Context, userID uint, role model.Role, id uint) (*model.Donation, error)
}

type donationService struct {
	donationRepo repository.DonationRepository
	userRepo     repository.UserRepository
	cache        *cache.Client
}

// NewDonationService creates a new donation service.
func NewDonationService(donationRepo repository.DonationRepository, userRepo repository.UserRepository, cache *cache.Client) DonationService {
	return &donationService{
		donationRepo: donationRepo,
		userRepo:     userRepo,
		cache:        cache,
	}
}

// Add registers a new pending donation for a donor. A blank pickup location
// falls back to the donor's registered address.
func (s *donationService) Add(ctx context.Context, donorID uint, role model.Role, foodType, quantity, freshness, pickupLocation string) (*model.Donation, error) {
	if err := requireRole(role, model.RoleDonor); err != nil {
		return nil, err
	}

	donor, err := s.userRepo.FindByID(ctx, donorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("load donor: %w", err)
	}

	if pickupLocation == "" {
		pickupLocation = donor.Address
	}

	donation := &model.Donation{
		DonorID:        donor.ID,
		FoodType:       foodType,
		Quantity:       quantity,
		Freshness:      freshness,
		PickupLocation: pickupLocation,
		Status:         model.DonationStatusPending,
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}

	// New donation changes the total and pending counts on the admin dashboard.
	_ = s.cache.Delete(ctx, adminStatsCacheKey)

	return donation, nil
}

// ListOwn returns the donor's own donations, newest first.
func (s *donationService) ListOwn(ctx context.Context, donorID uint, role model.Role) ([]model.Donation, error) {
	if err := requireRole(role, model.RoleDonor); err != nil {
		return nil, err
	}
	return s.donationRepo.ListByDonor(ctx, donorID)
}

// Get returns a single donation. Donors may only see their own; admins may
// see any.
func (s *donationService) Get(ctx context.Context, userID uint, role model.Role, id uint) (*model.Donation, error) {
	switch role {
	case model.RoleDonor, model.RoleAdmin:
	case model.RoleDelivery:
		return nil, apperrors.ErrAccessDenied
	default:
		return nil, apperrors.ErrUnknownUserType
	}

	donation, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("load donation: %w", err)
	}

	if role == model.RoleDonor && donation.DonorID != userID {
		return nil, apperrors.ErrAccessDenied
	}

	return donation, nil
}

// requireRole checks the caller's role exhaustively: a role outside the known
// set is surfaced as corrupted data rather than an ordinary access failure.
func requireRole(role, want model.Role) error {
	switch role {
	case want:
		return nil
	case model.RoleDonor, model.RoleDelivery, model.RoleAdmin:
		return apperrors.ErrAccessDenied
	default:
		return apperrors.ErrUnknownUserType
	}
}
