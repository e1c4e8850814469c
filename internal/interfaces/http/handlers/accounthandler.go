// Package handlers contains the gin HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/application/account/usecases"
	"tally/internal/domain/account"
	"tally/internal/shared/authorization"
	"tally/internal/shared/biztime"
	"tally/internal/shared/constants"
	"tally/internal/shared/logger"
	"tally/internal/shared/utils"
)

type AccountHandler struct {
	registerUseCase       registerAccountUseCase
	loginUseCase          loginUseCase
	refreshUseCase        refreshTokenUseCase
	logoutUseCase         logoutUseCase
	changePasswordUseCase changePasswordUseCase
	linkUserUseCase       linkUserUseCase
	listAccountsUseCase   listAccountsUseCase
	attachPushKeyUseCase  attachPushKeyUseCase
	logger                logger.Interface
}

func NewAccountHandler(
	registerUC registerAccountUseCase,
	loginUC loginUseCase,
	refreshUC refreshTokenUseCase,
	logoutUC logoutUseCase,
	changePasswordUC changePasswordUseCase,
	linkUserUC linkUserUseCase,
	listAccountsUC listAccountsUseCase,
	attachPushKeyUC attachPushKeyUseCase,
	log logger.Interface,
) *AccountHandler {
	return &AccountHandler{
		registerUseCase:       registerUC,
		loginUseCase:          loginUC,
		refreshUseCase:        refreshUC,
		logoutUseCase:         logoutUC,
		changePasswordUseCase: changePasswordUC,
		linkUserUseCase:       linkUserUC,
		listAccountsUseCase:   listAccountsUC,
		attachPushKeyUseCase:  attachPushKeyUC,
		logger:                log,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,password"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	OriginID string `json:"origin_id"`
}

type LogoutRequest struct {
	OriginID string `json:"origin_id"`
}

type ChangePasswordRequest struct {
	// AccountID targets another account; admins only. Empty means self.
	AccountID string `json:"account_id"`
	Password  string `json:"password" binding:"required"`
}

type LinkUserRequest struct {
	AccountID string `json:"account_id" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
}

type NotificationKeyRequest struct {
	OriginID string `json:"origin_id" binding:"required"`
	Key      string `json:"key" binding:"required"`
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), usecases.RegisterAccountCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"uuid":     result.Account.PublicID,
		"username": result.Account.Username,
	})
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	meta := utils.ClientMetaFromRequest(c)
	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Username:  req.Username,
		Password:  req.Password,
		OriginID:  req.OriginID,
		IPAddress: meta.IPAddress,
		Device:    meta.Device,
		Browser:   meta.Browser,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", gin.H{
		"access_token":  result.Tokens.AccessToken,
		"refresh_token": result.Tokens.RefreshToken,
		"expires_in":    result.Tokens.ExpiresIn,
		"origin_id":     result.OriginID,
	})
}

func (h *AccountHandler) Refresh(c *gin.Context) {
	result, err := h.refreshUseCase.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		AccountID: c.GetString(constants.ContextKeyAccountID),
		TokenID:   c.GetString(constants.ContextKeyTokenID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "token refreshed", gin.H{
		"access_token": result.AccessToken,
		"expires_in":   result.ExpiresIn,
	})
}

func (h *AccountHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	// Binding errors fall through; a missing origin id is reported by the
	// use case as a 400 either way.
	_ = c.ShouldBindJSON(&req)

	err := h.logoutUseCase.Execute(c.Request.Context(), usecases.LogoutCommand{
		AccountID: c.GetString(constants.ContextKeyAccountID),
		OriginID:  req.OriginID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	callerID := c.GetString(constants.ContextKeyAccountID)
	targetID := req.AccountID
	if targetID == "" {
		targetID = callerID
	}

	err := h.changePasswordUseCase.Execute(c.Request.Context(), usecases.ChangePasswordCommand{
		TargetAccountID: targetID,
		CallerAccountID: callerID,
		CallerRole:      authorization.ParseRole(c.GetString(constants.ContextKeyRole)),
		NewPassword:     req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "password changed", nil)
}

func (h *AccountHandler) LinkUser(c *gin.Context) {
	var req LinkUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.linkUserUseCase.Execute(c.Request.Context(), usecases.LinkUserCommand{
		AccountPublicID: req.AccountID,
		UserID:          req.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user linked", nil)
}

func (h *AccountHandler) List(c *gin.Context) {
	result, err := h.listAccountsUseCase.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	accounts := make([]gin.H, 0, len(result.Accounts))
	for _, acc := range result.Accounts {
		accounts = append(accounts, serializeAccount(acc))
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"accounts": accounts})
}

func (h *AccountHandler) AttachNotificationKey(c *gin.Context) {
	var req NotificationKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.attachPushKeyUseCase.Execute(c.Request.Context(), usecases.AttachPushKeyCommand{
		AccountID: c.GetString(constants.ContextKeyAccountID),
		OriginID:  req.OriginID,
		Key:       req.Key,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "notification key stored", nil)
}

func serializeAccount(acc *account.Account) gin.H {
	out := gin.H{
		"uuid":       acc.PublicID,
		"username":   acc.Username,
		"created_at": biztime.FormatRFC3339(acc.CreatedAt),
	}
	if acc.LinkedUserID != nil {
		out["linked_user_id"] = *acc.LinkedUserID
	}
	return out
}
