package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodforward/internal/auth"
	apperrors "foodforward/internal/errors"
	"foodforward/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		role          model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@example.com",
			password: "password123",
			role:     model.RoleDonor,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "duplicate username",
			username: "alice",
			email:    "new@example.com",
			password: "password123",
			role:     model.RoleDonor,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)
			},
			expectedError: apperrors.ErrDuplicateUsername,
		},
		{
			name:     "duplicate email",
			username: "newuser",
			email:    "alice@example.com",
			password: "password123",
			role:     model.RoleDelivery,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "newuser").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{Email: "alice@example.com"}, nil)
			},
			expectedError: apperrors.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			mockSessions := new(MockSessionStore)

			service := NewAuthService(mockRepo, jwtService, mockSessions)
			user, err := service.Register(context.Background(), tt.username, tt.email, tt.password, tt.role, "+111", "1 Test Street")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.role, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterRejectsUnknownRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockSessionStore))

	user, err := service.Register(context.Background(), "eve", "eve@example.com", "password123", model.Role("superuser"), "", "")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		remember      bool
		setupMock     func(*MockUserRepository, *MockSessionStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "alice@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mSessions *MockSessionStore) {
				mRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
					ID:           1,
					Email:        "alice@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleDonor,
				}, nil)
				mSessions.On("Store", mock.Anything, mock.Anything, mock.Anything, auth.RefreshTokenExpiry).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "remember extends session",
			email:    "alice@example.com",
			password: "password123",
			remember: true,
			setupMock: func(mRepo *MockUserRepository, mSessions *MockSessionStore) {
				mRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
					ID:           1,
					Email:        "alice@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleDonor,
				}, nil)
				mSessions.On("Store", mock.Anything, mock.Anything, mock.Anything, auth.RememberRefreshTokenExpiry).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "wrongpassword",
			setupMock: func(mRepo *MockUserRepository, mSessions *MockSessionStore) {
				mRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
					ID:           1,
					Email:        "alice@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleDonor,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mSessions *MockSessionStore) {
				mRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockSessions := new(MockSessionStore)
			tt.setupMock(mockRepo, mockSessions)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockSessions)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password, tt.remember)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)

				// The access token must carry the user's role.
				claims, err := jwtService.ValidateToken(accessToken)
				assert.NoError(t, err)
				assert.Equal(t, user.Role, claims.Role)
				assert.Equal(t, user.ID, claims.UserID)
			}

			mockRepo.AssertExpectations(t)
			mockSessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockSessions := new(MockSessionStore)
	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(mockRepo, jwtService, mockSessions)

	var created *model.User
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*model.User)
		created.ID = 42
	}).Return(nil)

	_, err := service.Register(context.Background(), "alice", "alice@example.com", "password123", model.RoleDonor, "+111", "12 Baker Street")
	assert.NoError(t, err)

	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(created, nil)
	mockSessions.On("Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	accessToken, _, user, err := service.Login(context.Background(), "alice@example.com", "password123", false)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.Equal(t, uint(42), user.ID)

	// Wrong password still fails against the stored hash.
	_, _, _, err = service.Login(context.Background(), "alice@example.com", "password124", false)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Logout(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockSessions := new(MockSessionStore)
	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(mockRepo, jwtService, mockSessions)

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(1, "alice@example.com", model.RoleDonor, auth.RefreshTokenExpiry)
	assert.NoError(t, err)

	mockSessions.On("Delete", mock.Anything, tokenID).Return(nil)

	err = service.Logout(context.Background(), refreshToken)
	assert.NoError(t, err)
	mockSessions.AssertExpectations(t)
}
