// Package repository contains the GORM-backed implementations of the
// domain store interfaces.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tally/internal/domain/account"
	"tally/internal/infrastructure/persistence/mappers"
	"tally/internal/infrastructure/persistence/models"
	"tally/internal/shared/db"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

// accountColumnsWithoutDigest keeps the password digest out of every read
// that does not authenticate.
var accountColumnsWithoutDigest = []string{"public_id", "username", "created_at", "linked_user_id"}

// AccountRepository implements the account repository interface.
type AccountRepository struct {
	db     *gorm.DB
	mapper mappers.AccountMapper
	logger logger.Interface
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(gdb *gorm.DB, log logger.Interface) account.Repository {
	return &AccountRepository{
		db:     gdb,
		mapper: mappers.NewAccountMapper(),
		logger: log,
	}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, entity *account.Account) error {
	model := r.mapper.ToModel(entity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		appErr := apperrors.FromStoreError(err)
		if apperrors.IsConflictError(appErr) {
			return apperrors.NewConflictError("username is already taken")
		}
		r.logger.Errorw("failed to create account", "username", entity.Username, "error", err)
		return appErr
	}

	r.logger.Infow("account created", "public_id", entity.PublicID, "username", entity.Username)
	return nil
}

// GetByUsername returns all accounts matching the normalized username,
// password digest included. The caller verifies the digest.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) ([]*account.Account, error) {
	var accountModels []*models.AccountModel

	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Find(&accountModels).Error; err != nil {
		r.logger.Errorw("failed to query accounts by username", "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	return r.mapper.ToEntities(accountModels), nil
}

// GetByPublicID retrieves an account without its password digest.
func (r *AccountRepository) GetByPublicID(ctx context.Context, publicID string) (*account.Account, error) {
	var model models.AccountModel

	err := r.db.WithContext(ctx).
		Select(accountColumnsWithoutDigest).
		Where("public_id = ?", publicID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		r.logger.Errorw("failed to get account", "public_id", publicID, "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	return r.mapper.ToEntity(&model), nil
}

// List returns all accounts without password digests.
func (r *AccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	var accountModels []*models.AccountModel

	if err := r.db.WithContext(ctx).
		Select(accountColumnsWithoutDigest).
		Order("created_at").
		Find(&accountModels).Error; err != nil {
		r.logger.Errorw("failed to list accounts", "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	return r.mapper.ToEntities(accountModels), nil
}

// UpdatePassword replaces the password digest of an account.
func (r *AccountRepository) UpdatePassword(ctx context.Context, publicID, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("public_id = ?", publicID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		r.logger.Errorw("failed to update password", "public_id", publicID, "error", result.Error)
		return apperrors.FromStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("account not found")
	}

	r.logger.Infow("account password updated", "public_id", publicID)
	return nil
}

// LinkUser sets the linked user id on an account.
func (r *AccountRepository) LinkUser(ctx context.Context, publicID, userID string) error {
	result := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("public_id = ?", publicID).
		Update("linked_user_id", userID)
	if result.Error != nil {
		r.logger.Errorw("failed to link user", "public_id", publicID, "user_id", userID, "error", result.Error)
		return apperrors.FromStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("account not found")
	}

	r.logger.Infow("account linked to user", "public_id", publicID, "user_id", userID)
	return nil
}
