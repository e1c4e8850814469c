package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

func TestAttachPushKeyUseCase_Success(t *testing.T) {
	sessionRepo := new(mockSessionRepository)
	sessionRepo.On("AttachPushKey", mock.Anything, "acc-1", "origin-1", "fcm-key").Return(int64(1), nil)

	uc := NewAttachPushKeyUseCase(sessionRepo, logger.NewLogger())

	err := uc.Execute(context.Background(), AttachPushKeyCommand{
		AccountID: "acc-1",
		OriginID:  "origin-1",
		Key:       "fcm-key",
	})
	assert.NoError(t, err)
}

func TestAttachPushKeyUseCase_NoMatchingSessionIsSilentSuccess(t *testing.T) {
	sessionRepo := new(mockSessionRepository)
	sessionRepo.On("AttachPushKey", mock.Anything, "acc-1", "stale-origin", "fcm-key").Return(int64(0), nil)

	uc := NewAttachPushKeyUseCase(sessionRepo, logger.NewLogger())

	err := uc.Execute(context.Background(), AttachPushKeyCommand{
		AccountID: "acc-1",
		OriginID:  "stale-origin",
		Key:       "fcm-key",
	})
	assert.NoError(t, err)
}

func TestAttachPushKeyUseCase_MissingFields(t *testing.T) {
	sessionRepo := new(mockSessionRepository)
	uc := NewAttachPushKeyUseCase(sessionRepo, logger.NewLogger())

	err := uc.Execute(context.Background(), AttachPushKeyCommand{AccountID: "acc-1", Key: "fcm-key"})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.GetAppError(err).Code)

	err = uc.Execute(context.Background(), AttachPushKeyCommand{AccountID: "acc-1", OriginID: "origin-1"})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.GetAppError(err).Code)
}
