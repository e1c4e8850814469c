// Package usecases implements the user profile application logic.
package usecases

import (
	"context"

	"tally/internal/domain/user"
	"tally/internal/shared/authorization"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

type CreateUserCommand struct {
	FirstName    string
	LastName     string
	IsTemporary  bool
	PriceRanking string
	Permissions  string
}

type CreateUserResult struct {
	User *user.User
}

type CreateUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewCreateUserUseCase(userRepo user.Repository, log logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		logger:   log,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error) {
	name, err := user.NewName(cmd.FirstName, cmd.LastName)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	newUser, err := user.NewUser(name, cmd.IsTemporary,
		user.PriceRanking(cmd.PriceRanking), authorization.ParseRole(cmd.Permissions))
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	uc.logger.Infow("user created", "user_id", newUser.UserID, "name", name.Full())
	return &CreateUserResult{User: newUser}, nil
}
