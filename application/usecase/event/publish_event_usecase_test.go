package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clubly/clubly/application/port/inbound"
	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/application/usecase/atomic"
	"github.com/clubly/clubly/domain"
	"github.com/clubly/clubly/domain/entity"
	apperror "github.com/clubly/clubly/domain/error"
)

const testBaseCapacity = 100

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *entity.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Event), args.Error(1)
}

func (m *MockEventRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// creditStore is a minimal in-memory credit repository with guarded
// status transitions, enough to observe revert behavior end to end.
type creditStore struct {
	mu     sync.Mutex
	credit *domain.Credit
}

func (s *creditStore) Create(ctx context.Context, credit *domain.Credit) error { return nil }
func (s *creditStore) Delete(ctx context.Context, creditID string) error       { return nil }

func (s *creditStore) FindByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credit == nil || s.credit.ID != creditID {
		return nil, errors.New("credit not found")
	}
	copied := *s.credit
	return &copied, nil
}

func (s *creditStore) ConsumeAvailable(ctx context.Context, userID string, code domain.CreditCode, boundEntityID string, at time.Time) (*domain.Credit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credit == nil || s.credit.UserID != userID || s.credit.CreditCode != code || s.credit.Status != domain.CreditStatusAvailable {
		return nil, apperror.ErrNoCreditAvailable(userID, string(code))
	}
	s.credit.Status = domain.CreditStatusConsumed
	bound := boundEntityID
	consumedAt := at
	s.credit.ConsumedEntityID = &bound
	s.credit.ConsumedAt = &consumedAt
	copied := *s.credit
	return &copied, nil
}

func (s *creditStore) Release(ctx context.Context, creditID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credit == nil || s.credit.ID != creditID || s.credit.Status != domain.CreditStatusConsumed {
		return apperror.ErrCreditNotConsumed(creditID)
	}
	s.credit.Status = domain.CreditStatusAvailable
	s.credit.ConsumedEntityID = nil
	s.credit.ConsumedAt = nil
	return nil
}

func (s *creditStore) HasAvailable(ctx context.Context, userID string, code domain.CreditCode) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credit != nil && s.credit.UserID == userID && s.credit.CreditCode == code &&
		s.credit.Status == domain.CreditStatusAvailable, nil
}

type noopLogger struct{}

func (noopLogger) Debug(ctx context.Context, message string, fields map[string]interface{}) {}
func (noopLogger) Info(ctx context.Context, message string, fields map[string]interface{})  {}
func (noopLogger) Warn(ctx context.Context, message string, fields map[string]interface{})  {}
func (noopLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
}
func (noopLogger) Critical(ctx context.Context, message string, fields map[string]interface{}) {}

type noopAlertSink struct{}

func (noopAlertSink) Emit(ctx context.Context, alert outbound.Alert) {}

func newUseCase(eventRepo outbound.EventRepository, credits outbound.CreditRepository) *PublishEventUseCase {
	creditTx := atomic.NewCreditTransactionExecutor(credits, noopLogger{}, noopAlertSink{})
	return NewPublishEventUseCase(eventRepo, creditTx, testBaseCapacity)
}

func publishRequest(capacity int) inbound.PublishEventRequest {
	return inbound.PublishEventRequest{
		Title:       "Spring meetup",
		Description: "Season opener",
		Capacity:    capacity,
		StartsAt:    time.Now().UTC().Add(48 * time.Hour),
	}
}

func TestPublishEvent_BaseCapacity_NeedsNoCredit(t *testing.T) {
	eventRepo := new(MockEventRepository)
	store := &creditStore{}
	uc := newUseCase(eventRepo, store)

	eventRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entity.Event) bool {
		return e.Capacity == testBaseCapacity && e.OwnerID == "user-1"
	})).Return(nil).Once()

	ev, err := uc.PublishEvent(context.Background(), "user-1", publishRequest(testBaseCapacity))

	assert.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	eventRepo.AssertExpectations(t)
}

func TestPublishEvent_UpgradedCapacity_ConsumesCredit(t *testing.T) {
	eventRepo := new(MockEventRepository)
	store := &creditStore{credit: domain.NewCredit("credit-1", "user-1", domain.CreditEventUpgrade500, "txn-1")}
	uc := newUseCase(eventRepo, store)

	eventRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	ev, err := uc.PublishEvent(context.Background(), "user-1", publishRequest(400))

	assert.NoError(t, err)
	credit, _ := store.FindByID(context.Background(), "credit-1")
	assert.Equal(t, domain.CreditStatusConsumed, credit.Status)
	assert.Equal(t, ev.ID, *credit.ConsumedEntityID)
}

func TestPublishEvent_NoCredit_FailsBeforeInsert(t *testing.T) {
	eventRepo := new(MockEventRepository)
	uc := newUseCase(eventRepo, &creditStore{})

	_, err := uc.PublishEvent(context.Background(), "user-1", publishRequest(400))

	assert.True(t, apperror.IsCode(err, apperror.ErrCodeNoCreditAvailable))
	eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPublishEvent_InsertFailure_RevertsCredit(t *testing.T) {
	eventRepo := new(MockEventRepository)
	store := &creditStore{credit: domain.NewCredit("credit-1", "user-1", domain.CreditEventUpgrade500, "txn-1")}
	uc := newUseCase(eventRepo, store)

	insertErr := errors.New("insert failed")
	eventRepo.On("Create", mock.Anything, mock.Anything).Return(insertErr).Once()

	_, err := uc.PublishEvent(context.Background(), "user-1", publishRequest(400))

	assert.ErrorIs(t, err, insertErr)
	credit, _ := store.FindByID(context.Background(), "credit-1")
	assert.Equal(t, domain.CreditStatusAvailable, credit.Status)
	assert.Nil(t, credit.ConsumedEntityID)
}

func TestPublishEvent_CapacityTooLarge(t *testing.T) {
	uc := newUseCase(new(MockEventRepository), &creditStore{})

	_, err := uc.PublishEvent(context.Background(), "user-1", publishRequest(5000))

	assert.True(t, apperror.IsCode(err, apperror.ErrCodeCapacityTooLarge))
}

func TestCanUpgradeCapacity(t *testing.T) {
	store := &creditStore{credit: domain.NewCredit("credit-1", "user-1", domain.CreditEventUpgrade500, "txn-1")}
	uc := newUseCase(new(MockEventRepository), store)

	ok, err := uc.CanUpgradeCapacity(context.Background(), "user-1", testBaseCapacity)
	assert.NoError(t, err)
	assert.True(t, ok, "base capacity never needs a credit")

	ok, err = uc.CanUpgradeCapacity(context.Background(), "user-1", 400)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.CanUpgradeCapacity(context.Background(), "user-1", 900)
	assert.NoError(t, err)
	assert.False(t, ok, "only a 500-capacity credit is on hand")
}
