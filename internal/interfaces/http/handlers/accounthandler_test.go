package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/application/account/usecases"
	"tally/internal/domain/account"
	"tally/internal/infrastructure/auth"
	"tally/internal/shared/constants"
	apperrors "tally/internal/shared/errors"
	"tally/internal/shared/logger"
)

type mockRegisterUC struct {
	result *usecases.RegisterAccountResult
	err    error
	called bool
}

func (m *mockRegisterUC) Execute(ctx context.Context, cmd usecases.RegisterAccountCommand) (*usecases.RegisterAccountResult, error) {
	m.called = true
	return m.result, m.err
}

type mockLoginUC struct {
	result  *usecases.LoginResult
	err     error
	lastCmd usecases.LoginCommand
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockRefreshUC struct {
	result *usecases.RefreshTokenResult
	err    error
}

func (m *mockRefreshUC) Execute(ctx context.Context, cmd usecases.RefreshTokenCommand) (*usecases.RefreshTokenResult, error) {
	return m.result, m.err
}

type mockLogoutUC struct {
	err     error
	lastCmd usecases.LogoutCommand
}

func (m *mockLogoutUC) Execute(ctx context.Context, cmd usecases.LogoutCommand) error {
	m.lastCmd = cmd
	return m.err
}

func newTestHandler(register *mockRegisterUC, login *mockLoginUC, refresh *mockRefreshUC, logout *mockLogoutUC) *AccountHandler {
	return NewAccountHandler(register, login, refresh, logout, nil, nil, nil, nil, logger.NewLogger())
}

func performJSON(t *testing.T, handler gin.HandlerFunc, body interface{}, ctxValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(http.MethodPost, "/", &buf)
	c.Request.Header.Set("Content-Type", "application/json")

	for key, value := range ctxValues {
		c.Set(key, value)
	}

	handler(c)
	return recorder
}

func TestAccountHandler_RegisterCreated(t *testing.T) {
	acc, err := account.NewAccount("hans_m", "digest")
	require.NoError(t, err)

	handler := newTestHandler(&mockRegisterUC{result: &usecases.RegisterAccountResult{Account: acc}}, nil, nil, nil)

	recorder := performJSON(t, handler.Register, gin.H{"username": "hans_m", "password": "Sommer2024"}, nil)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), acc.PublicID)
}

func TestAccountHandler_RegisterConflict(t *testing.T) {
	handler := newTestHandler(&mockRegisterUC{err: apperrors.NewConflictError("username is already taken")}, nil, nil, nil)

	recorder := performJSON(t, handler.Register, gin.H{"username": "hans_m", "password": "Sommer2024"}, nil)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestAccountHandler_RegisterMissingFields(t *testing.T) {
	handler := newTestHandler(&mockRegisterUC{}, nil, nil, nil)

	recorder := performJSON(t, handler.Register, gin.H{"username": "hans_m"}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAccountHandler_RegisterPolicyEnforcedAtBinding(t *testing.T) {
	register := &mockRegisterUC{}
	handler := newTestHandler(register, nil, nil, nil)

	recorder := performJSON(t, handler.Register, gin.H{"username": "bad name!", "password": "Sommer2024"}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, register.called)

	recorder = performJSON(t, handler.Register, gin.H{"username": "hans_m", "password": "weak"}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, register.called)
}

func TestAccountHandler_LoginUnauthorizedPolicy(t *testing.T) {
	handler := newTestHandler(nil, &mockLoginUC{err: apperrors.NewUnauthorizedError("invalid username or password")}, nil, nil)

	recorder := performJSON(t, handler.Login, gin.H{"username": "hans_m", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "invalid username or password")
}

func TestAccountHandler_LoginReturnsTokensAndOrigin(t *testing.T) {
	acc, err := account.NewAccount("hans_m", "digest")
	require.NoError(t, err)

	login := &mockLoginUC{result: &usecases.LoginResult{
		Account:  acc,
		Tokens:   &auth.TokenPair{AccessToken: "acc-token", RefreshToken: "ref-token", ExpiresIn: 1800},
		OriginID: "origin-1",
	}}
	handler := newTestHandler(nil, login, nil, nil)

	recorder := performJSON(t, handler.Login, gin.H{"username": "hans_m", "password": "Sommer2024", "origin_id": "origin-1"}, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "origin-1", login.lastCmd.OriginID)

	var response struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			OriginID     string `json:"origin_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "acc-token", response.Data.AccessToken)
	assert.Equal(t, "ref-token", response.Data.RefreshToken)
	assert.Equal(t, "origin-1", response.Data.OriginID)
}

func TestAccountHandler_RefreshSessionInvalidated(t *testing.T) {
	handler := newTestHandler(nil, nil, &mockRefreshUC{err: apperrors.NewSessionInvalidatedError("session has been invalidated")}, nil)

	recorder := performJSON(t, handler.Refresh, nil, map[string]string{
		constants.ContextKeyAccountID: "acc-1",
		constants.ContextKeyTokenID:   "tok-1",
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "session_invalidated")
}

func TestAccountHandler_LogoutMissingOrigin(t *testing.T) {
	handler := newTestHandler(nil, nil, nil, &mockLogoutUC{err: apperrors.NewBadRequestError("origin id is required")})

	recorder := performJSON(t, handler.Logout, gin.H{}, map[string]string{
		constants.ContextKeyAccountID: "acc-1",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAccountHandler_LogoutPassesIdentity(t *testing.T) {
	logout := &mockLogoutUC{}
	handler := newTestHandler(nil, nil, nil, logout)

	recorder := performJSON(t, handler.Logout, gin.H{"origin_id": "origin-1"}, map[string]string{
		constants.ContextKeyAccountID: "acc-1",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "acc-1", logout.lastCmd.AccountID)
	assert.Equal(t, "origin-1", logout.lastCmd.OriginID)
}
