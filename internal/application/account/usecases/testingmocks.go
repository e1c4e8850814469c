package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tally/internal/domain/account"
	"tally/internal/domain/user"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Create(ctx context.Context, entity *account.Account) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *mockAccountRepository) GetByUsername(ctx context.Context, username string) ([]*account.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *mockAccountRepository) GetByPublicID(ctx context.Context, publicID string) (*account.Account, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *mockAccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *mockAccountRepository) UpdatePassword(ctx context.Context, publicID, passwordHash string) error {
	args := m.Called(ctx, publicID, passwordHash)
	return args.Error(0)
}

func (m *mockAccountRepository) LinkUser(ctx context.Context, publicID, userID string) error {
	args := m.Called(ctx, publicID, userID)
	return args.Error(0)
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, session *account.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) GetActiveByTokenID(ctx context.Context, accountID, tokenID string) (*account.Session, error) {
	args := m.Called(ctx, accountID, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Session), args.Error(1)
}

func (m *mockSessionRepository) InvalidateByOrigin(ctx context.Context, accountID, originID string) (int64, error) {
	args := m.Called(ctx, accountID, originID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepository) InvalidateByAccount(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepository) AttachPushKey(ctx context.Context, accountID, originID, key string) (int64, error) {
	args := m.Called(ctx, accountID, originID, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepository) ListActive(ctx context.Context) ([]*account.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Session), args.Error(1)
}

func (m *mockSessionRepository) ListActiveByAccount(ctx context.Context, accountID string) ([]*account.Session, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Session), args.Error(1)
}

func (m *mockSessionRepository) ActivePushKeys(ctx context.Context, accountIDs []string) ([]string, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context, invalidatedBefore, createdBefore time.Time) (int64, error) {
	args := m.Called(ctx, invalidatedBefore, createdBefore)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, entity *user.User) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID string) (*user.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetByLinkedAccountID(ctx context.Context, accountPublicID string) (*user.User, error) {
	args := m.Called(ctx, accountPublicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockUserRepository) UpdateProfilePicturePath(ctx context.Context, userID, path string) error {
	args := m.Called(ctx, userID, path)
	return args.Error(0)
}

// passthroughTxManager runs the function directly; enough for asserting
// the calls made inside the transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
