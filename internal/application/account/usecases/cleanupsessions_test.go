package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tally/internal/shared/biztime"
	"tally/internal/shared/config"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

func TestCleanupSessionsUseCase_UsesConfiguredCutoffs(t *testing.T) {
	sessionRepo := new(mockSessionRepository)

	withinMinute := func(expected time.Time) interface{} {
		return mock.MatchedBy(func(actual time.Time) bool {
			return actual.Sub(expected).Abs() < time.Minute
		})
	}

	sessionRepo.On("DeleteExpired", mock.Anything,
		withinMinute(biztime.DaysAgo(10)),
		withinMinute(biztime.DaysAgo(365)),
	).Return(int64(3), nil)

	uc := NewCleanupSessionsUseCase(sessionRepo, testSessionConfig(), logger.NewLogger())

	deleted, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	sessionRepo.AssertExpectations(t)
}

func TestCleanupSessionsUseCase_RefusesUnconfiguredRetention(t *testing.T) {
	sessionRepo := new(mockSessionRepository)

	uc := NewCleanupSessionsUseCase(sessionRepo, config.SessionConfig{}, logger.NewLogger())

	_, err := uc.Execute(context.Background())
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 500, appErr.Code)

	sessionRepo.AssertNotCalled(t, "DeleteExpired", mock.Anything, mock.Anything, mock.Anything)
}
