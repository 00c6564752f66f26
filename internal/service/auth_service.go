package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodforward/internal/auth"
	apperrors "foodforward/internal/errors"
	"foodforward/internal/model"
	"foodforward/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, email, password string, role model.Role, phone, address string) (*model.User, error)
	Login(ctx context.Context, email, password string, remember bool) (accessToken, refreshToken string, user *model.User, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo     repository.UserRepository
	jwtService   *auth.JWTService
	sessionStore auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessionStore auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// Register creates a new user with a bcrypt-hashed password. Username and
// email must both be unused.
func (s *authService) Register(ctx context.Context, username, email, password string, role model.Role, phone, address string) (*model.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: user type must be donor, delivery or admin", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateUsername
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	existing, err = s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Phone:        phone,
		Address:      address,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens. When
// remember is set the refresh session lives longer.
func (s *authService) Login(ctx context.Context, email, password string, remember bool) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	ttl := auth.RefreshTokenExpiry
	if remember {
		ttl = auth.RememberRefreshTokenExpiry
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email, user.Role, ttl)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	session := auth.Session{UserID: user.ID, Email: user.Email, Role: user.Role}
	if err := s.sessionStore.Store(ctx, tokenID, session, ttl); err != nil {
		return "", "", nil, fmt.Errorf("store session: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// Refresh validates a refresh token against its stored session and returns a
// new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (accessToken string, err error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	session, err := s.sessionStore.Get(ctx, tokenID)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if session.UserID != claims.UserID || session.Email != claims.Email {
		return "", apperrors.ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(session.UserID, session.Email, session.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout invalidates the session behind a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidCredentials
	}
	return s.sessionStore.Delete(ctx, tokenID)
}
