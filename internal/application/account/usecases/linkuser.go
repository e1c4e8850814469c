package usecases

import (
	"context"

	"tally/internal/domain/account"
	"tally/internal/domain/user"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

type LinkUserCommand struct {
	AccountPublicID string
	UserID          string
}

// LinkUserUseCase binds a user profile to an account. The profile carries
// the role; linking is what turns a "none" account into an admin or user.
type LinkUserUseCase struct {
	accountRepo account.Repository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewLinkUserUseCase(
	accountRepo account.Repository,
	userRepo user.Repository,
	log logger.Interface,
) *LinkUserUseCase {
	return &LinkUserUseCase{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		logger:      log,
	}
}

func (uc *LinkUserUseCase) Execute(ctx context.Context, cmd LinkUserCommand) error {
	if cmd.AccountPublicID == "" || cmd.UserID == "" {
		return apperrors.NewBadRequestError("account id and user id are required")
	}

	if _, err := uc.userRepo.GetByID(ctx, cmd.UserID); err != nil {
		return err
	}

	if err := uc.accountRepo.LinkUser(ctx, cmd.AccountPublicID, cmd.UserID); err != nil {
		return err
	}

	uc.logger.Infow("user linked to account",
		"account_id", cmd.AccountPublicID,
		"user_id", cmd.UserID)
	return nil
}
