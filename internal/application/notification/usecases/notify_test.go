package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tally/internal/domain/account"
	"tally/internal/infrastructure/push"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

type mockSessionRepo struct {
	mock.Mock
	account.SessionRepository
}

func (m *mockSessionRepo) ActivePushKeys(ctx context.Context, accountIDs []string) ([]string, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, key string, notification push.Notification) error {
	args := m.Called(ctx, key, notification)
	return args.Error(0)
}

func TestNotifyAccountUseCase_SanitizesContent(t *testing.T) {
	sessionRepo := new(mockSessionRepo)
	sender := new(mockSender)

	sessionRepo.On("ActivePushKeys", mock.Anything, []string{"acc-1"}).Return([]string{"key-1"}, nil)
	sender.On("Send", mock.Anything, "key-1", mock.MatchedBy(func(n push.Notification) bool {
		return n.Title == "Hello" && n.Body == "alert(1)" && n.Route == "/home"
	})).Return(nil)

	uc := NewNotifyAccountUseCase(sessionRepo, sender, logger.NewLogger())

	result, err := uc.Execute(context.Background(), NotifyAccountCommand{
		NotifyCommand: NotifyCommand{
			Title: "<b>Hello</b>",
			Body:  "<script>alert(1)</script>",
		},
		AccountID: "acc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Dispatched)
	sender.AssertExpectations(t)
}

func TestNotifyAccountUseCase_DeliveryFailureNotFatal(t *testing.T) {
	sessionRepo := new(mockSessionRepo)
	sender := new(mockSender)

	sessionRepo.On("ActivePushKeys", mock.Anything, []string{"acc-1"}).
		Return([]string{"dead-key", "live-key"}, nil)
	sender.On("Send", mock.Anything, "dead-key", mock.Anything).Return(assert.AnError)
	sender.On("Send", mock.Anything, "live-key", mock.Anything).Return(nil)

	uc := NewNotifyAccountUseCase(sessionRepo, sender, logger.NewLogger())

	result, err := uc.Execute(context.Background(), NotifyAccountCommand{
		NotifyCommand: NotifyCommand{Title: "Hello"},
		AccountID:     "acc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Dispatched)
}

func TestNotifyAccountUseCase_EmptyTitleRejected(t *testing.T) {
	uc := NewNotifyAccountUseCase(new(mockSessionRepo), new(mockSender), logger.NewLogger())

	_, err := uc.Execute(context.Background(), NotifyAccountCommand{
		NotifyCommand: NotifyCommand{Title: "<i></i>"},
		AccountID:     "acc-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}
