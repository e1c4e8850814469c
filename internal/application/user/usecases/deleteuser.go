package usecases

import (
	"context"

	"tally/internal/domain/user"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

type DeleteUserCommand struct {
	UserID string
}

// DeleteUserUseCase removes a user profile. Accounts linked to the profile
// survive; their role claim degrades to none at the next token mint.
type DeleteUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewDeleteUserUseCase(userRepo user.Repository, log logger.Interface) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo: userRepo,
		logger:   log,
	}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	if cmd.UserID == "" {
		return apperrors.NewBadRequestError("user id is required")
	}

	if err := uc.userRepo.Delete(ctx, cmd.UserID); err != nil {
		return err
	}

	uc.logger.Infow("user deleted", "user_id", cmd.UserID)
	return nil
}
