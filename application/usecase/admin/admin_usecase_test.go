package admin

import (
	"context"
	"errors"
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

// Mock implementations

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateSubscriptionExpiry(ctx context.Context, userID string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, userID string, status entity.AccountStatus) error {
	args := m.Called(ctx, userID, status)
	return args.Error(0)
}

type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) Create(ctx context.Context, credit *domain.Credit) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}

func (m *MockCreditRepository) Delete(ctx context.Context, creditID string) error {
	args := m.Called(ctx, creditID)
	return args.Error(0)
}

func (m *MockCreditRepository) FindByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) ConsumeAvailable(ctx context.Context, userID string, code domain.CreditCode, boundEntityID string, at time.Time) (*domain.Credit, error) {
	args := m.Called(ctx, userID, code, boundEntityID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) Release(ctx context.Context, creditID string) error {
	args := m.Called(ctx, creditID)
	return args.Error(0)
}

func (m *MockCreditRepository) HasAvailable(ctx context.Context, userID string, code domain.CreditCode) (bool, error) {
	args := m.Called(ctx, userID, code)
	return args.Bool(0), args.Error(1)
}

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Append(ctx context.Context, record *domain.AuditRecord) (*domain.AuditRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditRecord), args.Error(1)
}

func (m *MockAuditLogRepository) FindByTarget(ctx context.Context, targetType domain.TargetType, targetID string, limit int) ([]*domain.AuditRecord, error) {
	args := m.Called(ctx, targetType, targetID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuditRecord), args.Error(1)
}

func (m *MockAuditLogRepository) FindByActor(ctx context.Context, actorID string, limit int) ([]*domain.AuditRecord, error) {
	args := m.Called(ctx, actorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuditRecord), args.Error(1)
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

func testActor() domain.ActorContext {
	return domain.ActorContext{
		ActorType:        domain.ActorTypeAdmin,
		ActorID:          "admin-1",
		AuthenticatedVia: domain.AuthMethodPassword,
	}
}

func activeUser(id string) *entity.User {
	u := entity.NewUser(id, id+"@example.com", "hash", "Name", "user")
	u.SubscriptionExpiresAt = time.Now().UTC().AddDate(0, 1, 0)
	return u
}

func newExecutor(auditRepo *MockAuditLogRepository) *atomic.MutationExecutor {
	return atomic.NewMutationExecutor(auditRepo, noopLogger{}, noopAlertSink{})
}

func TestGrantCredit_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	creditRepo := new(MockCreditRepository)
	auditRepo := new(MockAuditLogRepository)
	uc := NewGrantCreditUseCase(userRepo, creditRepo, newExecutor(auditRepo))

	userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser("user-1"), nil).Once()
	creditRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Credit) bool {
		return c.UserID == "user-1" &&
			c.CreditCode == domain.CreditEventUpgrade500 &&
			c.Status == domain.CreditStatusAvailable
	})).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.MatchedBy(func(r *domain.AuditRecord) bool {
		return r.ActionType == domain.ActionGrantCredit &&
			r.Result == domain.AuditResultSuccess &&
			r.RelatedEntityID != ""
	})).Return(&domain.AuditRecord{ID: "audit-1", Result: domain.AuditResultSuccess}, nil).Once()

	res, err := uc.Execute(context.Background(), testActor(), inbound.GrantCreditRequest{
		UserID:              "user-1",
		CreditCode:          string(domain.CreditEventUpgrade500),
		SourceTransactionID: "txn-1",
		Reason:              "goodwill for outage",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.CreditStatusAvailable, res.Credit.Status)
	assert.Equal(t, "audit-1", res.AuditRecord.ID)
	creditRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestGrantCredit_UserNotFound_LogsRejection(t *testing.T) {
	userRepo := new(MockUserRepository)
	creditRepo := new(MockCreditRepository)
	auditRepo := new(MockAuditLogRepository)
	uc := NewGrantCreditUseCase(userRepo, creditRepo, newExecutor(auditRepo))

	userRepo.On("FindByID", mock.Anything, "missing").Return(nil, apperror.ErrUserNotFound("missing")).Once()
	auditRepo.On("Append", mock.Anything, mock.MatchedBy(func(r *domain.AuditRecord) bool {
		return r.ActionType == domain.ActionGrantCreditRejected &&
			r.Result == domain.AuditResultRejected &&
			r.ErrorCode == string(apperror.ErrCodeUserNotFound)
	})).Return(&domain.AuditRecord{ID: "audit-2"}, nil).Once()

	_, err := uc.Execute(context.Background(), testActor(), inbound.GrantCreditRequest{
		UserID:     "missing",
		CreditCode: string(domain.CreditEventUpgrade500),
		Reason:     "goodwill for outage",
	})

	assert.True(t, apperror.IsCode(err, apperror.ErrCodeUserNotFound))
	creditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	auditRepo.AssertExpectations(t)
}

func TestGrantCredit_AuditFailure_DeletesCredit(t *testing.T) {
	userRepo := new(MockUserRepository)
	creditRepo := new(MockCreditRepository)
	auditRepo := new(MockAuditLogRepository)
	uc := NewGrantCreditUseCase(userRepo, creditRepo, newExecutor(auditRepo))

	auditErr := errors.New("audit insert failed")
	userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser("user-1"), nil).Once()

	var grantedID string
	creditRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		grantedID = args.Get(1).(*domain.Credit).ID
	}).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil, auditErr).Once()
	creditRepo.On("Delete", mock.Anything, mock.MatchedBy(func(id string) bool {
		return id == grantedID
	})).Return(nil).Once()

	_, err := uc.Execute(context.Background(), testActor(), inbound.GrantCreditRequest{
		UserID:     "user-1",
		CreditCode: string(domain.CreditEventUpgrade500),
		Reason:     "goodwill for outage",
	})

	assert.ErrorIs(t, err, auditErr)
	creditRepo.AssertExpectations(t)
}

func TestGrantCredit_InvalidCreditCode(t *testing.T) {
	uc := NewGrantCreditUseCase(new(MockUserRepository), new(MockCreditRepository), newExecutor(new(MockAuditLogRepository)))

	_, err := uc.Execute(context.Background(), testActor(), inbound.GrantCreditRequest{
		UserID:     "user-1",
		CreditCode: "NOT_A_PRODUCT",
		Reason:     "goodwill",
	})

	assert.True(t, apperror.IsCode(err, apperror.ErrCodeInvalidCreditCode))
}

func TestExtendSubscription_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := new(MockAuditLogRepository)
	uc := NewExtendSubscriptionUseCase(userRepo, newExecutor(auditRepo))

	user := activeUser("user-1")
	userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil).Once()
	userRepo.On("UpdateSubscriptionExpiry", mock.Anything, "user-1", mock.MatchedBy(func(at time.Time) bool {
		return at.After(user.SubscriptionExpiresAt)
	})).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.MatchedBy(func(r *domain.AuditRecord) bool {
		return r.ActionType == domain.ActionExtendSubscription && r.Result == domain.AuditResultSuccess
	})).Return(&domain.AuditRecord{ID: "audit-3"}, nil).Once()

	res, err := uc.Execute(context.Background(), testActor(), inbound.ExtendSubscriptionRequest{
		UserID: "user-1",
		Days:   30,
		Reason: "billing dispute resolved",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, res.ExpiresAt)
	userRepo.AssertExpectations(t)
}

func TestExtendSubscription_AuditFailure_RestoresPriorExpiry(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := new(MockAuditLogRepository)
	uc := NewExtendSubscriptionUseCase(userRepo, newExecutor(auditRepo))

	user := activeUser("user-1")
	prior := user.SubscriptionExpiresAt
	auditErr := errors.New("audit insert failed")

	userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil).Once()
	userRepo.On("UpdateSubscriptionExpiry", mock.Anything, "user-1", mock.MatchedBy(func(at time.Time) bool {
		return at.After(prior)
	})).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil, auditErr).Once()
	userRepo.On("UpdateSubscriptionExpiry", mock.Anything, "user-1", prior).Return(nil).Once()

	_, err := uc.Execute(context.Background(), testActor(), inbound.ExtendSubscriptionRequest{
		UserID: "user-1",
		Days:   30,
		Reason: "billing dispute resolved",
	})

	assert.ErrorIs(t, err, auditErr)
	userRepo.AssertExpectations(t)
}

func TestExtendSubscription_InvalidDays(t *testing.T) {
	uc := NewExtendSubscriptionUseCase(new(MockUserRepository), newExecutor(new(MockAuditLogRepository)))

	_, err := uc.Execute(context.Background(), testActor(), inbound.ExtendSubscriptionRequest{
		UserID: "user-1",
		Days:   0,
		Reason: "reason",
	})

	assert.True(t, apperror.IsCode(err, apperror.ErrCodeInvalidRequest))
}

func TestSetAccountStatus_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := new(MockAuditLogRepository)
	uc := NewAccountStatusUseCase(userRepo, newExecutor(auditRepo))

	userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser("user-1"), nil).Once()
	userRepo.On("UpdateStatus", mock.Anything, "user-1", entity.AccountStatusSuspended).Return(nil).Once()
	auditRepo.On("Append", mock.Anything, mock.MatchedBy(func(r *domain.AuditRecord) bool {
		return r.ActionType == domain.ActionSetAccountStatus &&
			r.Metadata["previous_status"] == string(entity.AccountStatusActive)
	})).Return(&domain.AuditRecord{ID: "audit-4"}, nil).Once()

	res, err := uc.Execute(context.Background(), testActor(), inbound.SetAccountStatusRequest{
		UserID: "user-1",
		Status: string(entity.AccountStatusSuspended),
		Reason: "terms violation",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(entity.AccountStatusSuspended), res.Status)
	userRepo.AssertExpectations(t)
}

func TestSetAccountStatus_AlreadyInStatus_LogsRejection(t *testing.T) {
	userRepo := new(MockUserRepository)
	auditRepo := new(MockAuditLogRepository)
	uc := NewAccountStatusUseCase(userRepo, newExecutor(auditRepo))

	userRepo.On("FindByID", mock.Anything, "user-1").Return(activeUser("user-1"), nil).Once()
	auditRepo.On("Append", mock.Anything, mock.MatchedBy(func(r *domain.AuditRecord) bool {
		return r.ActionType == domain.ActionSetAccountStatusRejected &&
			r.Result == domain.AuditResultRejected
	})).Return(&domain.AuditRecord{ID: "audit-5"}, nil).Once()

	_, err := uc.Execute(context.Background(), testActor(), inbound.SetAccountStatusRequest{
		UserID: "user-1",
		Status: string(entity.AccountStatusActive),
		Reason: "terms violation",
	})

	assert.True(t, apperror.IsCode(err, apperror.ErrCodeInvalidStatus))
	userRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	auditRepo.AssertExpectations(t)
}

func TestListAuditTrail_Validation(t *testing.T) {
	auditRepo := new(MockAuditLogRepository)
	uc := NewAdminUseCase(new(MockUserRepository), new(MockCreditRepository), auditRepo, newExecutor(auditRepo))

	_, err := uc.ListAuditTrail(context.Background(), inbound.ListAuditTrailRequest{TargetType: "spaceship", TargetID: "x"})
	assert.True(t, apperror.IsCode(err, apperror.ErrCodeInvalidRequest))

	auditRepo.On("FindByTarget", mock.Anything, domain.TargetTypeUser, "user-1", defaultAuditTrailLimit).
		Return([]*domain.AuditRecord{{ID: "audit-1"}}, nil).Once()

	records, err := uc.ListAuditTrail(context.Background(), inbound.ListAuditTrailRequest{TargetType: "user", TargetID: "user-1"})
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	auditRepo.AssertExpectations(t)
}

func TestListAuditTrail_ByActor(t *testing.T) {
	auditRepo := new(MockAuditLogRepository)
	uc := NewAdminUseCase(new(MockUserRepository), new(MockCreditRepository), auditRepo, newExecutor(auditRepo))

	_, err := uc.ListAuditTrail(context.Background(), inbound.ListAuditTrailRequest{ActorID: "admin-1", TargetID: "user-1"})
	assert.True(t, apperror.IsCode(err, apperror.ErrCodeInvalidRequest), "actor and target filters are mutually exclusive")

	auditRepo.On("FindByActor", mock.Anything, "admin-1", defaultAuditTrailLimit).
		Return([]*domain.AuditRecord{{ID: "audit-1"}, {ID: "audit-2"}}, nil).Once()

	records, err := uc.ListAuditTrail(context.Background(), inbound.ListAuditTrailRequest{ActorID: "admin-1"})
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	auditRepo.AssertExpectations(t)
}
