package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/shared/authorization"
)

func TestTokenIssuer_PairRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30, 14)

	pair, err := issuer.IssuePair("acc-1", authorization.RoleUser, "tok-1", "orig-1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(30*60), pair.ExpiresIn)

	access, err := issuer.VerifyOfType(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", access.Subject)
	assert.Equal(t, authorization.RoleUser, access.Permissions)
	assert.Empty(t, access.TokenID)

	refresh, err := issuer.VerifyOfType(pair.RefreshToken, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", refresh.TokenID)
	assert.Equal(t, "orig-1", refresh.OriginID)
}

func TestTokenIssuer_RejectsWrongType(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30, 14)

	access, err := issuer.IssueAccessToken("acc-1", authorization.RoleAdmin)
	require.NoError(t, err)

	_, err = issuer.VerifyOfType(access, TokenTypeRefresh)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsTamperedSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30, 14)
	other := NewTokenIssuer("other-secret", 30, 14)

	access, err := issuer.IssueAccessToken("acc-1", authorization.RoleUser)
	require.NoError(t, err)

	_, err = other.Verify(access)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -1, 14)

	access, err := issuer.IssueAccessToken("acc-1", authorization.RoleUser)
	require.NoError(t, err)

	_, err = issuer.Verify(access)
	assert.Error(t, err)
}

func TestTokenIssuer_NoneRoleForUnlinkedAccount(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30, 14)

	access, err := issuer.IssueAccessToken("acc-1", authorization.RoleNone)
	require.NoError(t, err)

	claims, err := issuer.VerifyOfType(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, authorization.RoleNone, claims.Permissions)
}
