package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/application/account/usecases"
	"tally/internal/domain/account"
	"tally/internal/shared/biztime"
	"tally/internal/shared/logger"
	"tally/internal/shared/utils"
)

// SessionHandler exposes the admin session inventory and the two
// termination operations.
type SessionHandler struct {
	listSessionsUseCase     *usecases.ListSessionsUseCase
	terminateOriginUseCase  *usecases.TerminateOriginSessionsUseCase
	terminateAccountUseCase *usecases.TerminateAccountSessionsUseCase
	logger                  logger.Interface
}

func NewSessionHandler(
	listSessionsUC *usecases.ListSessionsUseCase,
	terminateOriginUC *usecases.TerminateOriginSessionsUseCase,
	terminateAccountUC *usecases.TerminateAccountSessionsUseCase,
	log logger.Interface,
) *SessionHandler {
	return &SessionHandler{
		listSessionsUseCase:     listSessionsUC,
		terminateOriginUseCase:  terminateOriginUC,
		terminateAccountUseCase: terminateAccountUC,
		logger:                  log,
	}
}

func (h *SessionHandler) List(c *gin.Context) {
	result, err := h.listSessionsUseCase.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	grouped := make(map[string][]gin.H, len(result.SessionsByAccount))
	for accountID, sessions := range result.SessionsByAccount {
		serialized := make([]gin.H, 0, len(sessions))
		for _, session := range sessions {
			serialized = append(serialized, serializeSession(session))
		}
		grouped[accountID] = serialized
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"sessions": grouped})
}

func (h *SessionHandler) TerminateOrigin(c *gin.Context) {
	err := h.terminateOriginUseCase.Execute(c.Request.Context(), usecases.TerminateOriginSessionsCommand{
		AccountID: c.Param("accountId"),
		OriginID:  c.Param("originId"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "sessions terminated", nil)
}

func (h *SessionHandler) TerminateAccount(c *gin.Context) {
	err := h.terminateAccountUseCase.Execute(c.Request.Context(), usecases.TerminateAccountSessionsCommand{
		AccountID: c.Param("accountId"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "sessions terminated", nil)
}

func serializeSession(session *account.Session) gin.H {
	return gin.H{
		"origin_id":  session.OriginID,
		"ip_address": session.IPAddress,
		"device":     session.Device,
		"browser":    session.Browser,
		"created_at": biztime.FormatRFC3339(session.CreatedAt),
		"has_push":   session.PushNotificationKey != nil && *session.PushNotificationKey != "",
	}
}
