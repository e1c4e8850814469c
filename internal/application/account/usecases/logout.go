package usecases

import (
	"context"

	"tally/internal/domain/account"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

type LogoutCommand struct {
	AccountID string
	OriginID  string
}

// LogoutUseCase invalidates the caller's session for one origin.
// Idempotent: logging out an origin with no active session succeeds.
type LogoutUseCase struct {
	sessionRepo account.SessionRepository
	cleanup     *CleanupSessionsUseCase
	logger      logger.Interface
}

func NewLogoutUseCase(
	sessionRepo account.SessionRepository,
	cleanup *CleanupSessionsUseCase,
	log logger.Interface,
) *LogoutUseCase {
	return &LogoutUseCase{
		sessionRepo: sessionRepo,
		cleanup:     cleanup,
		logger:      log,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if cmd.OriginID == "" {
		return apperrors.NewBadRequestError("origin id is required")
	}

	rows, err := uc.sessionRepo.InvalidateByOrigin(ctx, cmd.AccountID, cmd.OriginID)
	if err != nil {
		uc.logger.Errorw("failed to invalidate session", "account_id", cmd.AccountID, "error", err)
		return err
	}

	uc.logger.Infow("account logged out",
		"account_id", cmd.AccountID,
		"origin_id", cmd.OriginID,
		"sessions_invalidated", rows)

	// Opportunistic sweep; failures must not turn a successful logout
	// into an error.
	if uc.cleanup != nil {
		if _, err := uc.cleanup.Execute(ctx); err != nil {
			uc.logger.Warnw("post-logout cleanup failed", "error", err)
		}
	}

	return nil
}
