package usecases

import (
	"context"

	"tally/internal/domain/user"
	"tally/internal/shared/logger"
)

type ListUsersResult struct {
	Users []*user.User
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, log logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   log,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context) (*ListUsersResult, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, err
	}

	return &ListUsersResult{Users: users}, nil
}
