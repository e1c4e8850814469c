package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tally/internal/application/account/helpers"
	"tally/internal/domain/account"
	"tally/internal/domain/user"
	"tally/internal/infrastructure/auth"
	"tally/internal/shared/authorization"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

func newTestIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret", 30, 14)
}

func newTestHasher() account.PasswordHasher {
	return testHasher{}
}

// testHasher avoids bcrypt latency in tests that run many logins.
type testHasher struct{}

func (testHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (testHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return assert.AnError
	}
	return nil
}

func testAccount(username, password string) *account.Account {
	acc, _ := account.NewAccount(username, "hashed:"+password)
	return acc
}

func linkedAdmin(t *testing.T) *user.User {
	name, err := user.NewName("Hans", "Müller")
	require.NoError(t, err)
	u, err := user.NewUser(name, false, user.PriceRankingMember, authorization.RoleAdmin)
	require.NoError(t, err)
	return u
}

func TestLoginUseCase_Success(t *testing.T) {
	accountRepo := new(mockAccountRepository)
	sessionRepo := new(mockSessionRepository)
	userRepo := new(mockUserRepository)

	acc := testAccount("hans_m", "Sommer2024")
	originID := account.NewOriginID()

	accountRepo.On("GetByUsername", mock.Anything, "hans_m").Return([]*account.Account{acc}, nil)
	userRepo.On("GetByLinkedAccountID", mock.Anything, acc.PublicID).Return(linkedAdmin(t), nil)
	sessionRepo.On("InvalidateByOrigin", mock.Anything, acc.PublicID, originID).Return(int64(1), nil)
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*account.Session")).Return(nil)

	uc := NewLoginUseCase(accountRepo, sessionRepo, newTestHasher(), newTestIssuer(),
		helpers.NewRoleResolver(userRepo), passthroughTxManager{}, logger.NewLogger())

	result, err := uc.Execute(context.Background(), LoginCommand{
		Username: "  Hans_M ",
		Password: "Sommer2024",
		OriginID: originID,
	})
	require.NoError(t, err)
	assert.Equal(t, originID, result.OriginID)

	issuer := newTestIssuer()
	claims, err := issuer.VerifyOfType(result.Tokens.RefreshToken, auth.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, acc.PublicID, claims.Subject)
	assert.Equal(t, originID, claims.OriginID)
	assert.Equal(t, authorization.RoleAdmin, claims.Permissions)

	sessionRepo.AssertExpectations(t)
}

func TestLoginUseCase_FreshOriginWhenAbsent(t *testing.T) {
	accountRepo := new(mockAccountRepository)
	sessionRepo := new(mockSessionRepository)
	userRepo := new(mockUserRepository)

	acc := testAccount("hans_m", "Sommer2024")

	accountRepo.On("GetByUsername", mock.Anything, "hans_m").Return([]*account.Account{acc}, nil)
	userRepo.On("GetByLinkedAccountID", mock.Anything, acc.PublicID).
		Return(nil, apperrors.NewNotFoundError("no user linked to account"))
	sessionRepo.On("InvalidateByOrigin", mock.Anything, acc.PublicID, mock.AnythingOfType("string")).Return(int64(0), nil)
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*account.Session")).Return(nil)

	uc := NewLoginUseCase(accountRepo, sessionRepo, newTestHasher(), newTestIssuer(),
		helpers.NewRoleResolver(userRepo), passthroughTxManager{}, logger.NewLogger())

	result, err := uc.Execute(context.Background(), LoginCommand{
		Username: "hans_m",
		Password: "Sommer2024",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.OriginID)

	// An unlinked account authenticates but carries the none role.
	claims, err := newTestIssuer().VerifyOfType(result.Tokens.AccessToken, auth.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, authorization.RoleNone, claims.Permissions)
}

func TestLoginUseCase_EachLoginMintsFreshTokenID(t *testing.T) {
	accountRepo := new(mockAccountRepository)
	sessionRepo := new(mockSessionRepository)
	userRepo := new(mockUserRepository)

	acc := testAccount("hans_m", "Sommer2024")
	originID := account.NewOriginID()

	accountRepo.On("GetByUsername", mock.Anything, "hans_m").Return([]*account.Account{acc}, nil)
	userRepo.On("GetByLinkedAccountID", mock.Anything, acc.PublicID).Return(linkedAdmin(t), nil)
	sessionRepo.On("InvalidateByOrigin", mock.Anything, acc.PublicID, originID).Return(int64(0), nil)

	var tokenIDs []string
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*account.Session")).
		Run(func(args mock.Arguments) {
			tokenIDs = append(tokenIDs, args.Get(1).(*account.Session).TokenID)
		}).Return(nil)

	uc := NewLoginUseCase(accountRepo, sessionRepo, newTestHasher(), newTestIssuer(),
		helpers.NewRoleResolver(userRepo), passthroughTxManager{}, logger.NewLogger())

	cmd := LoginCommand{Username: "hans_m", Password: "Sommer2024", OriginID: originID}
	_, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), cmd)
	require.NoError(t, err)

	require.Len(t, tokenIDs, 2)
	assert.NotEqual(t, tokenIDs[0], tokenIDs[1])
}

func TestLoginUseCase_WrongPassword(t *testing.T) {
	accountRepo := new(mockAccountRepository)
	sessionRepo := new(mockSessionRepository)
	userRepo := new(mockUserRepository)

	acc := testAccount("hans_m", "Sommer2024")
	accountRepo.On("GetByUsername", mock.Anything, "hans_m").Return([]*account.Account{acc}, nil)

	uc := NewLoginUseCase(accountRepo, sessionRepo, newTestHasher(), newTestIssuer(),
		helpers.NewRoleResolver(userRepo), passthroughTxManager{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), LoginCommand{Username: "hans_m", Password: "wrong"})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 401, appErr.Code)
	assert.Equal(t, "invalid username or password", appErr.Message)

	sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginUseCase_UnknownUsernameSameMessage(t *testing.T) {
	accountRepo := new(mockAccountRepository)
	sessionRepo := new(mockSessionRepository)
	userRepo := new(mockUserRepository)

	accountRepo.On("GetByUsername", mock.Anything, "nobody").Return([]*account.Account{}, nil)

	uc := NewLoginUseCase(accountRepo, sessionRepo, newTestHasher(), newTestIssuer(),
		helpers.NewRoleResolver(userRepo), passthroughTxManager{}, logger.NewLogger())

	_, err := uc.Execute(context.Background(), LoginCommand{Username: "nobody", Password: "Sommer2024"})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "invalid username or password", appErr.Message)
}

func TestLoginUseCase_NoOriginTwiceAccumulatesSessions(t *testing.T) {
	accountRepo := new(mockAccountRepository)
	sessionRepo := new(mockSessionRepository)
	userRepo := new(mockUserRepository)

	acc := testAccount("hans_m", "Sommer2024")

	accountRepo.On("GetByUsername", mock.Anything, "hans_m").Return([]*account.Account{acc}, nil)
	userRepo.On("GetByLinkedAccountID", mock.Anything, acc.PublicID).
		Return(nil, apperrors.NewNotFoundError("no user linked to account"))

	var invalidatedOrigins []string
	sessionRepo.On("InvalidateByOrigin", mock.Anything, acc.PublicID, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			invalidatedOrigins = append(invalidatedOrigins, args.String(2))
		}).Return(int64(0), nil)

	var created []*account.Session
	sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*account.Session")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*account.Session))
		}).Return(nil)

	uc := NewLoginUseCase(accountRepo, sessionRepo, newTestHasher(), newTestIssuer(),
		helpers.NewRoleResolver(userRepo), passthroughTxManager{}, logger.NewLogger())

	cmd := LoginCommand{Username: "hans_m", Password: "Sommer2024"}
	first, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)

	// Omitting the origin id yields a fresh origin per login, so the two
	// sessions never supersede each other and both stay ACTIVE.
	require.Len(t, created, 2)
	assert.NotEqual(t, created[0].TokenID, created[1].TokenID)
	assert.NotEqual(t, created[0].OriginID, created[1].OriginID)
	assert.False(t, created[0].Invalidated)
	assert.False(t, created[1].Invalidated)

	// Each login only invalidated its own fresh origin, which matched
	// nothing.
	require.Len(t, invalidatedOrigins, 2)
	assert.Equal(t, created[0].OriginID, invalidatedOrigins[0])
	assert.Equal(t, created[1].OriginID, invalidatedOrigins[1])

	assert.NotEqual(t, first.OriginID, second.OriginID)
}
