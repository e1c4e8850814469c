package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"tally/internal/domain/account"
	"tally/internal/infrastructure/persistence/mappers"
	"tally/internal/infrastructure/persistence/models"
	"tally/internal/shared/biztime"
	"tally/internal/shared/db"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

// SessionRepository implements the session store. Every mutation is a
// single scoped UPDATE or INSERT, so concurrent logins and refreshes for
// different origins never contend on each other's rows.
type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
	logger logger.Interface
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(gdb *gorm.DB, log logger.Interface) account.SessionRepository {
	return &SessionRepository{
		db:     gdb,
		mapper: mappers.NewSessionMapper(),
		logger: log,
	}
}

// Create inserts a new ACTIVE session row.
func (r *SessionRepository) Create(ctx context.Context, session *account.Session) error {
	model := r.mapper.ToModel(session)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create session", "account_id", session.AccountID, "error", err)
		return apperrors.FromStoreError(err)
	}

	return nil
}

// GetActiveByTokenID returns the ACTIVE session matching both ids.
// Invalidated rows are never returned, so refresh against a superseded
// token fails here regardless of the JWT still being within its lifetime.
func (r *SessionRepository) GetActiveByTokenID(ctx context.Context, accountID, tokenID string) (*account.Session, error) {
	var model models.SessionModel

	err := r.db.WithContext(ctx).
		Where("token_id = ? AND account_id = ? AND invalidated = ?", tokenID, accountID, false).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		r.logger.Errorw("failed to get session", "token_id", tokenID, "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	return r.mapper.ToEntity(&model), nil
}

// InvalidateByOrigin flips every ACTIVE session for (account, origin) to
// INVALIDATED. Zero rows affected is success.
func (r *SessionRepository) InvalidateByOrigin(ctx context.Context, accountID, originID string) (int64, error) {
	return r.invalidate(ctx, "account_id = ? AND origin_id = ? AND invalidated = ?", accountID, originID, false)
}

// InvalidateByAccount flips every ACTIVE session for the account.
func (r *SessionRepository) InvalidateByAccount(ctx context.Context, accountID string) (int64, error) {
	return r.invalidate(ctx, "account_id = ? AND invalidated = ?", accountID, false)
}

// invalidate stamps invalidated_at only on rows that were still ACTIVE,
// which keeps the first invalidation timestamp immutable.
func (r *SessionRepository) invalidate(ctx context.Context, query string, args ...interface{}) (int64, error) {
	now := biztime.NowUTC()
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SessionModel{}).
		Where(query, args...).
		Updates(map[string]interface{}{
			"invalidated":    true,
			"invalidated_at": now,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to invalidate sessions", "error", result.Error)
		return 0, apperrors.FromStoreError(result.Error)
	}

	return result.RowsAffected, nil
}

// AttachPushKey sets the push notification key on the matching ACTIVE
// session. Zero rows affected is reported, not treated as an error.
func (r *SessionRepository) AttachPushKey(ctx context.Context, accountID, originID, key string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SessionModel{}).
		Where("account_id = ? AND origin_id = ? AND invalidated = ?", accountID, originID, false).
		Update("push_notification_key", key)
	if result.Error != nil {
		r.logger.Errorw("failed to attach push key", "account_id", accountID, "error", result.Error)
		return 0, apperrors.FromStoreError(result.Error)
	}

	return result.RowsAffected, nil
}

// ListActive returns all ACTIVE sessions ordered by account.
func (r *SessionRepository) ListActive(ctx context.Context) ([]*account.Session, error) {
	var sessionModels []*models.SessionModel

	if err := r.db.WithContext(ctx).
		Where("invalidated = ?", false).
		Order("account_id, created_at").
		Find(&sessionModels).Error; err != nil {
		r.logger.Errorw("failed to list active sessions", "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	return r.mapper.ToEntities(sessionModels), nil
}

// ListActiveByAccount returns the ACTIVE sessions of one account.
func (r *SessionRepository) ListActiveByAccount(ctx context.Context, accountID string) ([]*account.Session, error) {
	var sessionModels []*models.SessionModel

	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND invalidated = ?", accountID, false).
		Order("created_at").
		Find(&sessionModels).Error; err != nil {
		r.logger.Errorw("failed to list account sessions", "account_id", accountID, "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	return r.mapper.ToEntities(sessionModels), nil
}

// ActivePushKeys returns the non-empty push keys of ACTIVE sessions. A nil
// account filter means all accounts.
func (r *SessionRepository) ActivePushKeys(ctx context.Context, accountIDs []string) ([]string, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SessionModel{}).
		Where("invalidated = ? AND push_notification_key IS NOT NULL AND push_notification_key <> ''", false)
	if accountIDs != nil {
		query = query.Where("account_id IN ?", accountIDs)
	}

	var keys []string
	if err := query.Pluck("push_notification_key", &keys).Error; err != nil {
		r.logger.Errorw("failed to collect push keys", "error", err)
		return nil, apperrors.FromStoreError(err)
	}

	return keys, nil
}

// DeleteExpired permanently removes sessions invalidated before the
// retention cutoff plus sessions of any state older than the absolute
// ceiling. Returns the number of rows deleted.
func (r *SessionRepository) DeleteExpired(ctx context.Context, invalidatedBefore, createdBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("(invalidated = ? AND invalidated_at < ?) OR created_at < ?", true, invalidatedBefore, createdBefore).
		Delete(&models.SessionModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete expired sessions", "error", result.Error)
		return 0, apperrors.FromStoreError(result.Error)
	}

	if result.RowsAffected > 0 {
		r.logger.Infow("expired sessions removed", "count", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
