package usecases

import (
	"context"

	"tally/internal/domain/account"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

type AttachPushKeyCommand struct {
	AccountID string
	OriginID  string
	Key       string
}

// AttachPushKeyUseCase stores a device's push notification key on its
// ACTIVE session. When no ACTIVE session matches the origin the call
// succeeds without effect; the client re-registers the key after its next
// login anyway.
type AttachPushKeyUseCase struct {
	sessionRepo account.SessionRepository
	logger      logger.Interface
}

func NewAttachPushKeyUseCase(sessionRepo account.SessionRepository, log logger.Interface) *AttachPushKeyUseCase {
	return &AttachPushKeyUseCase{
		sessionRepo: sessionRepo,
		logger:      log,
	}
}

func (uc *AttachPushKeyUseCase) Execute(ctx context.Context, cmd AttachPushKeyCommand) error {
	if cmd.OriginID == "" {
		return apperrors.NewBadRequestError("origin id is required")
	}
	if cmd.Key == "" {
		return apperrors.NewBadRequestError("notification key is required")
	}

	rows, err := uc.sessionRepo.AttachPushKey(ctx, cmd.AccountID, cmd.OriginID, cmd.Key)
	if err != nil {
		uc.logger.Errorw("failed to attach push key", "account_id", cmd.AccountID, "error", err)
		return err
	}

	if rows == 0 {
		uc.logger.Debugw("no active session for push key",
			"account_id", cmd.AccountID,
			"origin_id", cmd.OriginID)
	}

	return nil
}
