package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tally/internal/domain/account"
	"tally/internal/infrastructure/persistence/models"
	"tally/internal/shared/biztime"
	"tally/internal/shared/db"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = gdb.AutoMigrate(&models.AccountModel{}, &models.SessionModel{})
	require.NoError(t, err)

	return gdb
}

func createTestSession(t *testing.T, repo account.SessionRepository, accountID, originID string) *account.Session {
	session, err := account.NewSession(accountID, originID, "203.0.113.7", "web", "firefox")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), session))
	return session
}

func TestSessionRepository_SingleActivePerOrigin(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSessionRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	origin := account.NewOriginID()
	first := createTestSession(t, repo, "acc-1", origin)

	// A returning device supersedes its prior session before inserting
	// the new one, same as the login flow does.
	rows, err := repo.InvalidateByOrigin(ctx, "acc-1", origin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	second := createTestSession(t, repo, "acc-1", origin)

	active, err := repo.ListActiveByAccount(ctx, "acc-1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.TokenID, active[0].TokenID)

	_, err = repo.GetActiveByTokenID(ctx, "acc-1", first.TokenID)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestSessionRepository_OriginIsolation(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSessionRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	phoneOrigin := account.NewOriginID()
	laptopOrigin := account.NewOriginID()
	phone := createTestSession(t, repo, "acc-1", phoneOrigin)
	laptop := createTestSession(t, repo, "acc-1", laptopOrigin)

	// A login on the laptop origin leaves the phone session untouched.
	rows, err := repo.InvalidateByOrigin(ctx, "acc-1", laptopOrigin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := repo.GetActiveByTokenID(ctx, "acc-1", phone.TokenID)
	require.NoError(t, err)
	assert.Equal(t, phoneOrigin, got.OriginID)

	_, err = repo.GetActiveByTokenID(ctx, "acc-1", laptop.TokenID)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestSessionRepository_InvalidateByAccount(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSessionRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	createTestSession(t, repo, "acc-1", account.NewOriginID())
	createTestSession(t, repo, "acc-1", account.NewOriginID())
	other := createTestSession(t, repo, "acc-2", account.NewOriginID())

	rows, err := repo.InvalidateByAccount(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	active, err := repo.ListActiveByAccount(ctx, "acc-1")
	require.NoError(t, err)
	assert.Empty(t, active)

	// Other accounts are out of scope for a per-account termination.
	got, err := repo.GetActiveByTokenID(ctx, "acc-2", other.TokenID)
	require.NoError(t, err)
	assert.True(t, got.IsActive())
}

func TestSessionRepository_InvalidationIsIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSessionRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	origin := account.NewOriginID()
	session := createTestSession(t, repo, "acc-1", origin)

	rows, err := repo.InvalidateByOrigin(ctx, "acc-1", origin)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	var stamped models.SessionModel
	require.NoError(t, gdb.Where("token_id = ?", session.TokenID).First(&stamped).Error)
	require.NotNil(t, stamped.InvalidatedAt)
	firstStamp := *stamped.InvalidatedAt

	// Second pass matches no ACTIVE rows, so the timestamp survives.
	rows, err = repo.InvalidateByOrigin(ctx, "acc-1", origin)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	require.NoError(t, gdb.Where("token_id = ?", session.TokenID).First(&stamped).Error)
	require.NotNil(t, stamped.InvalidatedAt)
	assert.Equal(t, firstStamp, *stamped.InvalidatedAt)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSessionRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	now := biztime.NowUTC()
	seed := func(tokenID string, createdAt time.Time, invalidatedAt *time.Time) {
		model := &models.SessionModel{
			TokenID:       tokenID,
			AccountID:     "acc-1",
			OriginID:      account.NewOriginID(),
			CreatedAt:     createdAt,
			Invalidated:   invalidatedAt != nil,
			InvalidatedAt: invalidatedAt,
		}
		require.NoError(t, gdb.Create(model).Error)
	}

	staleStamp := now.AddDate(0, 0, -11)
	freshStamp := now.AddDate(0, 0, -2)
	seed("stale-invalidated", now.AddDate(0, 0, -30), &staleStamp)
	seed("fresh-invalidated", now.AddDate(0, 0, -5), &freshStamp)
	seed("ancient-active", now.AddDate(-1, 0, -5), nil)
	seed("current-active", now.AddDate(0, 0, -1), nil)

	deleted, err := repo.DeleteExpired(ctx, now.AddDate(0, 0, -10), now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var remaining []string
	require.NoError(t, gdb.Model(&models.SessionModel{}).Order("token_id").Pluck("token_id", &remaining).Error)
	assert.Equal(t, []string{"current-active", "fresh-invalidated"}, remaining)
}

func TestSessionRepository_AttachPushKey(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSessionRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	origin := account.NewOriginID()
	createTestSession(t, repo, "acc-1", origin)

	rows, err := repo.AttachPushKey(ctx, "acc-1", origin, "fcm-key-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// No ACTIVE session for the origin means the key lands nowhere.
	rows, err = repo.AttachPushKey(ctx, "acc-1", account.NewOriginID(), "fcm-key-2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	keys, err := repo.ActivePushKeys(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"fcm-key-1"}, keys)

	keys, err = repo.ActivePushKeys(ctx, []string{"acc-2"})
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSessionRepository_CreateInTransactionRollsBack(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSessionRepository(gdb, logger.NewLogger())
	tm := db.NewTransactionManager(gdb)
	ctx := context.Background()

	origin := account.NewOriginID()
	createTestSession(t, repo, "acc-1", origin)

	boom := assert.AnError
	err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := repo.InvalidateByOrigin(txCtx, "acc-1", origin); err != nil {
			return err
		}
		session, err := account.NewSession("acc-1", origin, "", "", "")
		if err != nil {
			return err
		}
		if err := repo.Create(txCtx, session); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// The rollback restores the original session as the only ACTIVE one.
	active, err := repo.ListActiveByAccount(ctx, "acc-1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, origin, active[0].OriginID)
}

func TestSessionRepository_ExpiredContextIsStoreUnavailable(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSessionRepository(gdb, logger.NewLogger())

	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := repo.GetActiveByTokenID(expired, "acc-1", "tok-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsStoreUnavailableError(err))
}
