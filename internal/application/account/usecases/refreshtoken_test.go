package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tally/internal/application/account/helpers"
	"tally/internal/domain/account"
	"tally/internal/infrastructure/auth"
	"tally/internal/shared/authorization"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

func TestRefreshTokenUseCase_Success(t *testing.T) {
	sessionRepo := new(mockSessionRepository)
	userRepo := new(mockUserRepository)

	session, err := account.NewSession("acc-1", account.NewOriginID(), "", "web", "firefox")
	require.NoError(t, err)

	sessionRepo.On("GetActiveByTokenID", mock.Anything, "acc-1", session.TokenID).Return(session, nil)
	userRepo.On("GetByLinkedAccountID", mock.Anything, "acc-1").Return(linkedAdmin(t), nil)

	uc := NewRefreshTokenUseCase(sessionRepo, newTestIssuer(),
		helpers.NewRoleResolver(userRepo), logger.NewLogger())

	result, err := uc.Execute(context.Background(), RefreshTokenCommand{
		AccountID: "acc-1",
		TokenID:   session.TokenID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30*60), result.ExpiresIn)

	claims, err := newTestIssuer().VerifyOfType(result.AccessToken, auth.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.Subject)
}

func TestRefreshTokenUseCase_InvalidatedSessionRefuses(t *testing.T) {
	sessionRepo := new(mockSessionRepository)
	userRepo := new(mockUserRepository)

	sessionRepo.On("GetActiveByTokenID", mock.Anything, "acc-1", "superseded-token").
		Return(nil, apperrors.NewNotFoundError("session not found"))

	uc := NewRefreshTokenUseCase(sessionRepo, newTestIssuer(),
		helpers.NewRoleResolver(userRepo), logger.NewLogger())

	_, err := uc.Execute(context.Background(), RefreshTokenCommand{
		AccountID: "acc-1",
		TokenID:   "superseded-token",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsSessionInvalidatedError(err))

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 401, appErr.Code)

	// The role is never consulted once the session lookup refuses.
	userRepo.AssertNotCalled(t, "GetByLinkedAccountID", mock.Anything, mock.Anything)
}

func TestRefreshTokenUseCase_RoleReResolvedFreshly(t *testing.T) {
	sessionRepo := new(mockSessionRepository)
	userRepo := new(mockUserRepository)

	session, err := account.NewSession("acc-1", account.NewOriginID(), "", "web", "firefox")
	require.NoError(t, err)
	sessionRepo.On("GetActiveByTokenID", mock.Anything, "acc-1", session.TokenID).Return(session, nil)

	// The profile was unlinked after login; the next refresh downgrades
	// the role claim to none even though the old tokens said admin.
	userRepo.On("GetByLinkedAccountID", mock.Anything, "acc-1").
		Return(nil, apperrors.NewNotFoundError("no user linked to account"))

	uc := NewRefreshTokenUseCase(sessionRepo, newTestIssuer(),
		helpers.NewRoleResolver(userRepo), logger.NewLogger())

	result, err := uc.Execute(context.Background(), RefreshTokenCommand{
		AccountID: "acc-1",
		TokenID:   session.TokenID,
	})
	require.NoError(t, err)

	claims, err := newTestIssuer().VerifyOfType(result.AccessToken, auth.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, authorization.RoleNone, claims.Permissions)
}
