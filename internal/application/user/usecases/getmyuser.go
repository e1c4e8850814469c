package usecases

import (
	"context"

	"tally/internal/domain/user"
	"tally/internal/shared/logger"
)

type GetMyUserCommand struct {
	AccountID string
}

type GetMyUserResult struct {
	User *user.User
}

// GetMyUserUseCase resolves the profile linked to the calling account.
// Not-found propagates; the caller is an unlinked account.
type GetMyUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetMyUserUseCase(userRepo user.Repository, log logger.Interface) *GetMyUserUseCase {
	return &GetMyUserUseCase{
		userRepo: userRepo,
		logger:   log,
	}
}

func (uc *GetMyUserUseCase) Execute(ctx context.Context, cmd GetMyUserCommand) (*GetMyUserResult, error) {
	linked, err := uc.userRepo.GetByLinkedAccountID(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}

	return &GetMyUserResult{User: linked}, nil
}
