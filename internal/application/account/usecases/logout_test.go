package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tally/internal/shared/config"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{RetentionDays: 10, MaxAgeDays: 365, CleanupIntervalMinutes: 60}
}

func TestLogoutUseCase_InvalidatesAndSweeps(t *testing.T) {
	sessionRepo := new(mockSessionRepository)
	sessionRepo.On("InvalidateByOrigin", mock.Anything, "acc-1", "origin-1").Return(int64(1), nil)
	sessionRepo.On("DeleteExpired", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

	cleanup := NewCleanupSessionsUseCase(sessionRepo, testSessionConfig(), logger.NewLogger())
	uc := NewLogoutUseCase(sessionRepo, cleanup, logger.NewLogger())

	err := uc.Execute(context.Background(), LogoutCommand{AccountID: "acc-1", OriginID: "origin-1"})
	require.NoError(t, err)
	sessionRepo.AssertExpectations(t)
}

func TestLogoutUseCase_MissingOriginIsBadRequest(t *testing.T) {
	sessionRepo := new(mockSessionRepository)

	uc := NewLogoutUseCase(sessionRepo, nil, logger.NewLogger())

	err := uc.Execute(context.Background(), LogoutCommand{AccountID: "acc-1"})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)

	sessionRepo.AssertNotCalled(t, "InvalidateByOrigin", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogoutUseCase_NoActiveSessionStillSucceeds(t *testing.T) {
	sessionRepo := new(mockSessionRepository)
	sessionRepo.On("InvalidateByOrigin", mock.Anything, "acc-1", "origin-1").Return(int64(0), nil)

	uc := NewLogoutUseCase(sessionRepo, nil, logger.NewLogger())

	err := uc.Execute(context.Background(), LogoutCommand{AccountID: "acc-1", OriginID: "origin-1"})
	assert.NoError(t, err)
}

func TestLogoutUseCase_CleanupFailureDoesNotFailLogout(t *testing.T) {
	sessionRepo := new(mockSessionRepository)
	sessionRepo.On("InvalidateByOrigin", mock.Anything, "acc-1", "origin-1").Return(int64(1), nil)
	sessionRepo.On("DeleteExpired", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), apperrors.NewStoreUnavailableError("store unavailable"))

	cleanup := NewCleanupSessionsUseCase(sessionRepo, testSessionConfig(), logger.NewLogger())
	uc := NewLogoutUseCase(sessionRepo, cleanup, logger.NewLogger())

	err := uc.Execute(context.Background(), LogoutCommand{AccountID: "acc-1", OriginID: "origin-1"})
	assert.NoError(t, err)
}
