package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tally/internal/domain/user"
	"tally/internal/infrastructure/persistence/mappers"
	"tally/internal/infrastructure/persistence/models"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

// UserRepository implements the user repository interface.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

// NewUserRepository creates a new user repository
func NewUserRepository(gdb *gorm.DB, log logger.Interface) user.Repository {
	return &UserRepository{
		db:     gdb,
		mapper: mappers.NewUserMapper(),
		logger: log,
	}
}

// Create persists a new user profile.
func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map user entity", "error", err)
		return fmt.Errorf("failed to map user entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user", "user_id", entity.UserID, "error", err)
		return apperrors.FromStoreError(err)
	}

	r.logger.Infow("user created", "user_id", entity.UserID, "name", entity.Name.Full())
	return nil
}

// GetByID returns the user with the given id.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*user.User, error) {
	var model models.UserModel

	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		r.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByLinkedAccountID resolves the profile linked to an account via the
// account's linked_user_id column. Not-found means the account is unlinked.
func (r *UserRepository) GetByLinkedAccountID(ctx context.Context, accountPublicID string) (*user.User, error) {
	var model models.UserModel

	err := r.db.WithContext(ctx).
		Joins("JOIN account ON account.linked_user_id = users.user_id").
		Where("account.public_id = ?", accountPublicID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("no user linked to account")
		}
		r.logger.Errorw("failed to resolve linked user", "account_id", accountPublicID, "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	return r.mapper.ToEntity(&model)
}

// List returns all user profiles.
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var userModels []*models.UserModel

	if err := r.db.WithContext(ctx).Order("created_at").Find(&userModels).Error; err != nil {
		r.logger.Errorw("failed to list users", "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	return r.mapper.ToEntities(userModels)
}

// Delete removes a user profile permanently.
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete user", "user_id", userID, "error", result.Error)
		return apperrors.FromStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}

	r.logger.Infow("user deleted", "user_id", userID)
	return nil
}

// UpdateProfilePicturePath stores the path of an uploaded profile picture.
func (r *UserRepository) UpdateProfilePicturePath(ctx context.Context, userID, path string) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("user_id = ?", userID).
		Update("profile_picture_path", path)
	if result.Error != nil {
		r.logger.Errorw("failed to update profile picture path", "user_id", userID, "error", result.Error)
		return apperrors.FromStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}

	return nil
}
