package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"foodforward/internal/auth"
	"foodforward/internal/cache"
	"foodforward/internal/model"
	"foodforward/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

// MockDonationRepository is a mock implementation of DonationRepository.
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Create(ctx context.Context, donation *model.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) FindByID(ctx context.Context, id uint) (*model.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDonationRepository) ListByDonor(ctx context.Context, donorID uint) ([]model.Donation, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Donation), args.Error(1)
}

func (m *MockDonationRepository) ListPending(ctx context.Context) ([]model.Donation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Donation), args.Error(1)
}

func (m *MockDonationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRepository) CountByStatus(ctx context.Context, status model.DonationStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockRecipientRepository is a mock implementation of RecipientRepository.
type MockRecipientRepository struct {
	mock.Mock
}

func (m *MockRecipientRepository) Create(ctx context.Context, recipient *model.Recipient) error {
	args := m.Called(ctx, recipient)
	return args.Error(0)
}

func (m *MockRecipientRepository) FindByID(ctx context.Context, id uint) (*model.Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipient), args.Error(1)
}

func (m *MockRecipientRepository) List(ctx context.Context) ([]model.Recipient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipient), args.Error(1)
}

func (m *MockRecipientRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockDeliveryRepository is a mock implementation of DeliveryRepository. Its
// WithTransaction runs the closure against the mock itself so tests can
// verify the writes that happen inside the transaction.
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) Create(ctx context.Context, delivery *model.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Save(ctx context.Context, delivery *model.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *MockDeliveryRepository) FindByID(ctx context.Context, id uint) (*model.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) ListByDeliveryPerson(ctx context.Context, personID uint) ([]model.Delivery, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) ListActive(ctx context.Context) ([]model.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeliveryRepository) FindDonationForUpdate(ctx context.Context, donationID uint) (*model.Donation, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDeliveryRepository) UpdateDonationStatus(ctx context.Context, donationID uint, status model.DonationStatus) error {
	args := m.Called(ctx, donationID, status)
	return args.Error(0)
}

func (m *MockDeliveryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.DeliveryRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

// recordingRedisHook intercepts redis commands without touching the network,
// so tests can observe cache writes and invalidations.
type recordingRedisHook struct {
	commands *[]string
}

func (h recordingRedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h recordingRedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		*h.commands = append(*h.commands, fmt.Sprintf("%v", cmd.Args()))
		return nil
	}
}

func (h recordingRedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

// newRecordingCache returns a cache client whose issued commands are captured
// instead of being sent to a server.
func newRecordingCache() (*cache.Client, *[]string) {
	commands := new([]string)
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	client.AddHook(recordingRedisHook{commands: commands})
	return cache.NewFromClient(client), commands
}

// MockSessionStore is a mock implementation of SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Store(ctx context.Context, tokenID string, session auth.Session, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, session, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, tokenID string) (*auth.Session, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
