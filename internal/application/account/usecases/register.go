// Package usecases implements the account and session application logic.
package usecases

import (
	"context"
	"fmt"

	"tally/internal/domain/account"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
	"tally/internal/shared/utils"
)

type RegisterAccountCommand struct {
	Username string
	Password string
}

type RegisterAccountResult struct {
	Account *account.Account
}

type RegisterAccountUseCase struct {
	accountRepo account.Repository
	hasher      account.PasswordHasher
	logger      logger.Interface
}

func NewRegisterAccountUseCase(
	accountRepo account.Repository,
	hasher account.PasswordHasher,
	log logger.Interface,
) *RegisterAccountUseCase {
	return &RegisterAccountUseCase{
		accountRepo: accountRepo,
		hasher:      hasher,
		logger:      log,
	}
}

func (uc *RegisterAccountUseCase) Execute(ctx context.Context, cmd RegisterAccountCommand) (*RegisterAccountResult, error) {
	username := utils.NormalizeUsername(cmd.Username)
	if !utils.IsValidUsername(username) {
		return nil, apperrors.NewValidationError("username may only contain lowercase letters, digits, and underscores")
	}
	if !utils.IsValidPassword(cmd.Password) {
		return nil, apperrors.NewValidationError("password must be at least 8 characters with upper and lower case letters and a digit")
	}

	passwordHash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newAccount, err := account.NewAccount(username, passwordHash)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.accountRepo.Create(ctx, newAccount); err != nil {
		return nil, err
	}

	uc.logger.Infow("account registered", "public_id", newAccount.PublicID, "username", username)
	return &RegisterAccountResult{Account: newAccount}, nil
}
