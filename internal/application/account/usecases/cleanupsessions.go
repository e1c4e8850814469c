package usecases

import (
	"context"

	"tally/internal/domain/account"
	"tally/internal/shared/biztime"
	"tally/internal/shared/config"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

// CleanupSessionsUseCase removes sessions past their retention. Two
// cutoffs apply: invalidated rows are kept for a grace period so recent
// terminations stay auditable, and rows of any state are dropped once
// they pass the absolute age ceiling. The ceiling bounds the growth
// caused by clients that never echo an origin id and therefore leak a
// session lineage per login.
type CleanupSessionsUseCase struct {
	sessionRepo   account.SessionRepository
	sessionConfig config.SessionConfig
	logger        logger.Interface
}

func NewCleanupSessionsUseCase(
	sessionRepo account.SessionRepository,
	sessionConfig config.SessionConfig,
	log logger.Interface,
) *CleanupSessionsUseCase {
	return &CleanupSessionsUseCase{
		sessionRepo:   sessionRepo,
		sessionConfig: sessionConfig,
		logger:        log,
	}
}

func (uc *CleanupSessionsUseCase) Execute(ctx context.Context) (int64, error) {
	// A non-positive cutoff would put the threshold at now or later and
	// sweep every session, active ones included.
	if uc.sessionConfig.RetentionDays <= 0 || uc.sessionConfig.MaxAgeDays <= 0 {
		return 0, apperrors.NewInternalError("session retention is not configured")
	}

	invalidatedBefore := biztime.DaysAgo(uc.sessionConfig.RetentionDays)
	createdBefore := biztime.DaysAgo(uc.sessionConfig.MaxAgeDays)

	deleted, err := uc.sessionRepo.DeleteExpired(ctx, invalidatedBefore, createdBefore)
	if err != nil {
		uc.logger.Errorw("session cleanup failed", "error", err)
		return 0, err
	}

	if deleted > 0 {
		uc.logger.Infow("session cleanup completed", "deleted", deleted)
	}
	return deleted, nil
}
