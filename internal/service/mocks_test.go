package service

import (
	"context"
	"io"
	"time"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/money"
	"juntaai-backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockGroupRepo
type MockGroupRepo struct {
	mock.Mock
}

func (m *MockGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockGroupRepo) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}
func (m *MockGroupRepo) List(ctx context.Context) ([]domain.Group, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Group), args.Error(1)
}
func (m *MockGroupRepo) ListByMember(ctx context.Context, userID string) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Group), args.Error(1)
}

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Add(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) Get(ctx context.Context, groupID, userID string) (*domain.Member, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) ListByGroup(ctx context.Context, groupID string) ([]domain.Member, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) SetIndividualGoal(ctx context.Context, groupID, userID string, goal money.Cents) error {
	args := m.Called(ctx, groupID, userID, goal)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, groupID, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, groupID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByGroup(ctx context.Context, groupID string) ([]domain.Payment, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) UpdateStatusIfPending(ctx context.Context, paymentID string, status domain.PaymentStatus) (int64, error) {
	args := m.Called(ctx, paymentID, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockExpenseRepo
type MockExpenseRepo struct {
	mock.Mock
}

func (m *MockExpenseRepo) Create(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}
func (m *MockExpenseRepo) ListByGroup(ctx context.Context, groupID string) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]domain.Expense), args.Error(1)
}

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPaymentReported(ctx context.Context, ownerEmail, ownerName, reporterName, groupName, amount string) error {
	args := m.Called(ctx, ownerEmail, ownerName, reporterName, groupName, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentDecision(ctx context.Context, reporterEmail, reporterName, groupName, amount string, confirmed bool) error {
	args := m.Called(ctx, reporterEmail, reporterName, groupName, amount, confirmed)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingReminder(ctx context.Context, ownerEmail, ownerName, groupName string, pendingCount int) error {
	args := m.Called(ctx, ownerEmail, ownerName, groupName, pendingCount)
	return args.Error(0)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) RequestUploadTarget(ctx context.Context, objectKey, contentType string) (*storage.UploadTarget, error) {
	args := m.Called(ctx, objectKey, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadTarget), args.Error(1)
}
func (m *MockStorage) SaveFile(key string, reader io.Reader) error {
	args := m.Called(key, reader)
	return args.Error(0)
}
func (m *MockStorage) ReadFile(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockStorage) ListObjects(ctx context.Context) (map[string]time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]time.Time), args.Error(1)
}
