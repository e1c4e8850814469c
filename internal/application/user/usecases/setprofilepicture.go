package usecases

import (
	"context"

	"tally/internal/domain/user"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

type SetProfilePictureCommand struct {
	UserID string
	Path   string
}

// SetProfilePictureUseCase stores the path of an uploaded profile picture.
// The upload itself is handled by the object store in front of this
// service; only the resulting path is persisted.
type SetProfilePictureUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewSetProfilePictureUseCase(userRepo user.Repository, log logger.Interface) *SetProfilePictureUseCase {
	return &SetProfilePictureUseCase{
		userRepo: userRepo,
		logger:   log,
	}
}

func (uc *SetProfilePictureUseCase) Execute(ctx context.Context, cmd SetProfilePictureCommand) error {
	if cmd.UserID == "" || cmd.Path == "" {
		return apperrors.NewBadRequestError("user id and picture path are required")
	}

	if err := uc.userRepo.UpdateProfilePicturePath(ctx, cmd.UserID, cmd.Path); err != nil {
		return err
	}

	uc.logger.Infow("profile picture updated", "user_id", cmd.UserID)
	return nil
}
