package usecases

import (
	"context"
	"fmt"

	"tally/internal/domain/account"
	"tally/internal/shared/authorization"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
	"tally/internal/shared/utils"
)

type ChangePasswordCommand struct {
	TargetAccountID string
	CallerAccountID string
	CallerRole      authorization.Role
	NewPassword     string
}

// ChangePasswordUseCase replaces an account's password. Accounts may
// change their own; administrators may change anyone's.
type ChangePasswordUseCase struct {
	accountRepo account.Repository
	hasher      account.PasswordHasher
	logger      logger.Interface
}

func NewChangePasswordUseCase(
	accountRepo account.Repository,
	hasher account.PasswordHasher,
	log logger.Interface,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		accountRepo: accountRepo,
		hasher:      hasher,
		logger:      log,
	}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if cmd.TargetAccountID != cmd.CallerAccountID && !cmd.CallerRole.IsAdmin() {
		return apperrors.NewForbiddenError("cannot change another account's password")
	}
	if !utils.IsValidPassword(cmd.NewPassword) {
		return apperrors.NewValidationError("password must be at least 8 characters with upper and lower case letters and a digit")
	}

	passwordHash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := uc.accountRepo.UpdatePassword(ctx, cmd.TargetAccountID, passwordHash); err != nil {
		return err
	}

	uc.logger.Infow("account password changed",
		"account_id", cmd.TargetAccountID,
		"changed_by", cmd.CallerAccountID)
	return nil
}
