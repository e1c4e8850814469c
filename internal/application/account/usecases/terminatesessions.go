package usecases

import (
	"context"

	"tally/internal/domain/account"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

type TerminateOriginSessionsCommand struct {
	AccountID string
	OriginID  string
}

// TerminateOriginSessionsUseCase lets an administrator kill the session of
// one device. Idempotent; the device notices at its next refresh.
type TerminateOriginSessionsUseCase struct {
	sessionRepo account.SessionRepository
	logger      logger.Interface
}

func NewTerminateOriginSessionsUseCase(sessionRepo account.SessionRepository, log logger.Interface) *TerminateOriginSessionsUseCase {
	return &TerminateOriginSessionsUseCase{
		sessionRepo: sessionRepo,
		logger:      log,
	}
}

func (uc *TerminateOriginSessionsUseCase) Execute(ctx context.Context, cmd TerminateOriginSessionsCommand) error {
	if cmd.AccountID == "" || cmd.OriginID == "" {
		return apperrors.NewBadRequestError("account id and origin id are required")
	}

	rows, err := uc.sessionRepo.InvalidateByOrigin(ctx, cmd.AccountID, cmd.OriginID)
	if err != nil {
		uc.logger.Errorw("failed to terminate origin sessions", "account_id", cmd.AccountID, "error", err)
		return err
	}

	uc.logger.Infow("origin sessions terminated",
		"account_id", cmd.AccountID,
		"origin_id", cmd.OriginID,
		"sessions_invalidated", rows)
	return nil
}

type TerminateAccountSessionsCommand struct {
	AccountID string
}

// TerminateAccountSessionsUseCase kills every session of an account across
// all devices.
type TerminateAccountSessionsUseCase struct {
	sessionRepo account.SessionRepository
	logger      logger.Interface
}

func NewTerminateAccountSessionsUseCase(sessionRepo account.SessionRepository, log logger.Interface) *TerminateAccountSessionsUseCase {
	return &TerminateAccountSessionsUseCase{
		sessionRepo: sessionRepo,
		logger:      log,
	}
}

func (uc *TerminateAccountSessionsUseCase) Execute(ctx context.Context, cmd TerminateAccountSessionsCommand) error {
	if cmd.AccountID == "" {
		return apperrors.NewBadRequestError("account id is required")
	}

	rows, err := uc.sessionRepo.InvalidateByAccount(ctx, cmd.AccountID)
	if err != nil {
		uc.logger.Errorw("failed to terminate account sessions", "account_id", cmd.AccountID, "error", err)
		return err
	}

	uc.logger.Infow("account sessions terminated",
		"account_id", cmd.AccountID,
		"sessions_invalidated", rows)
	return nil
}
