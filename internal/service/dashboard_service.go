package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodforward/internal/cache"
	apperrors "foodforward/internal/errors"
	"foodforward/internal/model"
	"foodforward/internal/repository"
)

const (
	adminStatsCacheKey = "admin:stats"
	adminStatsCacheTTL = time.Minute
)

// DashboardStats is the aggregate counter block on the admin dashboard.
type DashboardStats struct {
	TotalDonations        int64 `json:"total_donations"`
	DeliveredDonations    int64 `json:"delivered_donations"`
	PendingDonations      int64 `json:"pending_donations"`
	ActiveDeliveries      int64 `json:"active_deliveries"`
	ActiveDeliveryPersons int64 `json:"active_delivery_persons"`
	Recipients            int64 `json:"recipients"`
}

// AdminOverview is everything the admin dashboard renders.
type AdminOverview struct {
	PendingDonations []model.Donation  `json:"pending_donations"`
	ActiveDeliveries []model.Delivery  `json:"active_deliveries"`
	DeliveryPersons  []model.User      `json:"delivery_persons"`
	Recipients       []model.Recipient `json:"recipients"`
	Stats            DashboardStats    `json:"stats"`
}

// DashboardService resolves role dashboards and admin aggregates.
type DashboardService interface {
	Path(role model.Role) (string, error)
	AdminOverview(ctx context.Context, role model.Role) (*AdminOverview, error)
}

type dashboardService struct {
	donationRepo  repository.DonationRepository
	deliveryRepo  repository.DeliveryRepository
	userRepo      repository.UserRepository
	recipientRepo repository.RecipientRepository
	cache         *cache.Client
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	donationRepo repository.DonationRepository,
	deliveryRepo repository.DeliveryRepository,
	userRepo repository.UserRepository,
	recipientRepo repository.RecipientRepository,
	cache *cache.Client,
) DashboardService {
	return &dashboardService{
		donationRepo:  donationRepo,
		deliveryRepo:  deliveryRepo,
		userRepo:      userRepo,
		recipientRepo: recipientRepo,
		cache:         cache,
	}
}

// Path returns the dashboard route for a role. An unrecognized role means the
// stored user record is corrupt and is reported as such.
func (s *dashboardService) Path(role model.Role) (string, error) {
	switch role {
	case model.RoleDonor:
		return "/api/donor/dashboard", nil
	case model.RoleDelivery:
		return "/api/delivery/dashboard", nil
	case model.RoleAdmin:
		return "/api/admin/dashboard", nil
	default:
		return "", apperrors.ErrUnknownUserType
	}
}

// AdminOverview assembles the admin dashboard: the pending-donation queue in
// arrival order, active deliveries, courier and recipient registries, and the
// aggregate stats block (cached briefly).
func (s *dashboardService) AdminOverview(ctx context.Context, role model.Role) (*AdminOverview, error) {
	if err := requireRole(role, model.RoleAdmin); err != nil {
		return nil, err
	}

	pending, err := s.donationRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending donations: %w", err)
	}

	active, err := s.deliveryRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active deliveries: %w", err)
	}

	couriers, err := s.userRepo.ListByRole(ctx, model.RoleDelivery)
	if err != nil {
		return nil, fmt.Errorf("list delivery persons: %w", err)
	}

	recipients, err := s.recipientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}

	stats, err := s.stats(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminOverview{
		PendingDonations: pending,
		ActiveDeliveries: active,
		DeliveryPersons:  couriers,
		Recipients:       recipients,
		Stats:            *stats,
	}, nil
}

func (s *dashboardService) stats(ctx context.Context) (*DashboardStats, error) {
	if data, _ := s.cache.Get(ctx, adminStatsCacheKey); data != nil {
		var cached DashboardStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var stats DashboardStats
	var err error

	if stats.TotalDonations, err = s.donationRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count donations: %w", err)
	}
	if stats.DeliveredDonations, err = s.donationRepo.CountByStatus(ctx, model.DonationStatusDelivered); err != nil {
		return nil, fmt.Errorf("count delivered donations: %w", err)
	}
	if stats.PendingDonations, err = s.donationRepo.CountByStatus(ctx, model.DonationStatusPending); err != nil {
		return nil, fmt.Errorf("count pending donations: %w", err)
	}
	if stats.ActiveDeliveries, err = s.deliveryRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count active deliveries: %w", err)
	}
	if stats.ActiveDeliveryPersons, err = s.userRepo.CountByRole(ctx, model.RoleDelivery); err != nil {
		return nil, fmt.Errorf("count delivery persons: %w", err)
	}
	if stats.Recipients, err = s.recipientRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count recipients: %w", err)
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, adminStatsCacheKey, payload, adminStatsCacheTTL)
	}

	return &stats, nil
}
