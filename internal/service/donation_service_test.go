package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "foodforward/internal/errors"
	"foodforward/internal/model"
)

func TestDonationService_Add(t *testing.T) {
	tests := []struct {
		name           string
		role           model.Role
		pickupLocation string
		setupMock      func(*MockUserRepository, *MockDonationRepository)
		expectedError  error
		expectedPickup string
	}{
		{
			name:           "successful donation",
			role:           model.RoleDonor,
			pickupLocation: "Warehouse 4",
			setupMock: func(mUsers *MockUserRepository, mDonations *MockDonationRepository) {
				mUsers.On("FindByID", mock.Anything, uint(1)).Return(&model.User{
					ID: 1, Role: model.RoleDonor, Address: "12 Baker Street",
				}, nil)
				mDonations.On("Create", mock.Anything, mock.AnythingOfType("*model.Donation")).Return(nil)
			},
			expectedPickup: "Warehouse 4",
		},
		{
			name:           "blank pickup location falls back to donor address",
			role:           model.RoleDonor,
			pickupLocation: "",
			setupMock: func(mUsers *MockUserRepository, mDonations *MockDonationRepository) {
				mUsers.On("FindByID", mock.Anything, uint(1)).Return(&model.User{
					ID: 1, Role: model.RoleDonor, Address: "12 Baker Street",
				}, nil)
				mDonations.On("Create", mock.Anything, mock.AnythingOfType("*model.Donation")).Return(nil)
			},
			expectedPickup: "12 Baker Street",
		},
		{
			name:          "courier cannot donate",
			role:          model.RoleDelivery,
			setupMock:     func(mUsers *MockUserRepository, mDonations *MockDonationRepository) {},
			expectedError: apperrors.ErrAccessDenied,
		},
		{
			name:          "admin cannot donate",
			role:          model.RoleAdmin,
			setupMock:     func(mUsers *MockUserRepository, mDonations *MockDonationRepository) {},
			expectedError: apperrors.ErrAccessDenied,
		},
		{
			name:          "corrupt role is not an access failure",
			role:          model.Role("banana"),
			setupMock:     func(mUsers *MockUserRepository, mDonations *MockDonationRepository) {},
			expectedError: apperrors.ErrUnknownUserType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockDonations := new(MockDonationRepository)
			tt.setupMock(mockUsers, mockDonations)

			service := NewDonationService(mockDonations, mockUsers, nil)
			donation, err := service.Add(context.Background(), 1, tt.role, "rice", "5kg", "Fresh", tt.pickupLocation)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, donation)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, donation)
				assert.Equal(t, model.DonationStatusPending, donation.Status)
				assert.Equal(t, tt.expectedPickup, donation.PickupLocation)
				assert.Equal(t, uint(1), donation.DonorID)
			}

			mockUsers.AssertExpectations(t)
			mockDonations.AssertExpectations(t)
		})
	}
}

func TestDonationService_AddInvalidatesCachedStats(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByID", mock.Anything, uint(1)).Return(&model.User{
		ID: 1, Role: model.RoleDonor, Address: "12 Baker Street",
	}, nil)
	mockDonations := new(MockDonationRepository)
	mockDonations.On("Create", mock.Anything, mock.AnythingOfType("*model.Donation")).Return(nil)

	cacheClient, commands := newRecordingCache()
	service := NewDonationService(mockDonations, mockUsers, cacheClient)

	_, err := service.Add(context.Background(), 1, model.RoleDonor, "rice", "5kg", "Fresh", "")
	assert.NoError(t, err)
	assert.Contains(t, *commands, "[del "+adminStatsCacheKey+"]")
}

func TestDonationService_Get(t *testing.T) {
	stored := &model.Donation{ID: 7, DonorID: 1, FoodType: "rice", Status: model.DonationStatusPending}

	tests := []struct {
		name          string
		userID        uint
		role          model.Role
		donationID    uint
		setupMock     func(*MockDonationRepository)
		expectedError error
	}{
		{
			name:       "donor views own donation",
			userID:     1,
			role:       model.RoleDonor,
			donationID: 7,
			setupMock: func(m *MockDonationRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(stored, nil)
			},
		},
		{
			name:       "donor cannot view another donor's donation",
			userID:     2,
			role:       model.RoleDonor,
			donationID: 7,
			setupMock: func(m *MockDonationRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(stored, nil)
			},
			expectedError: apperrors.ErrAccessDenied,
		},
		{
			name:       "admin views any donation",
			userID:     99,
			role:       model.RoleAdmin,
			donationID: 7,
			setupMock: func(m *MockDonationRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(stored, nil)
			},
		},
		{
			name:          "courier is denied",
			userID:        3,
			role:          model.RoleDelivery,
			donationID:    7,
			setupMock:     func(m *MockDonationRepository) {},
			expectedError: apperrors.ErrAccessDenied,
		},
		{
			name:       "unknown donation",
			userID:     1,
			role:       model.RoleDonor,
			donationID: 404,
			setupMock: func(m *MockDonationRepository) {
				m.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDonations := new(MockDonationRepository)
			tt.setupMock(mockDonations)

			service := NewDonationService(mockDonations, new(MockUserRepository), nil)
			donation, err := service.Get(context.Background(), tt.userID, tt.role, tt.donationID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, donation)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored, donation)
			}

			mockDonations.AssertExpectations(t)
		})
	}
}

func TestDonationService_ListOwn(t *testing.T) {
	mockDonations := new(MockDonationRepository)
	mockDonations.On("ListByDonor", mock.Anything, uint(1)).Return([]model.Donation{
		{ID: 2, DonorID: 1}, {ID: 1, DonorID: 1},
	}, nil)

	service := NewDonationService(mockDonations, new(MockUserRepository), nil)

	donations, err := service.ListOwn(context.Background(), 1, model.RoleDonor)
	assert.NoError(t, err)
	assert.Len(t, donations, 2)

	_, err = service.ListOwn(context.Background(), 1, model.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}
