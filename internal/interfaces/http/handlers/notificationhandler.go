package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/application/notification/usecases"
	"tally/internal/shared/logger"
	"tally/internal/shared/utils"
)

type NotificationHandler struct {
	notifyAccountUseCase  *usecases.NotifyAccountUseCase
	notifyUserUseCase     *usecases.NotifyUserUseCase
	notifyAllUsersUseCase *usecases.NotifyAllUsersUseCase
	notifyAdminsUseCase   *usecases.NotifyAdminsUseCase
	logger                logger.Interface
}

func NewNotificationHandler(
	notifyAccountUC *usecases.NotifyAccountUseCase,
	notifyUserUC *usecases.NotifyUserUseCase,
	notifyAllUsersUC *usecases.NotifyAllUsersUseCase,
	notifyAdminsUC *usecases.NotifyAdminsUseCase,
	log logger.Interface,
) *NotificationHandler {
	return &NotificationHandler{
		notifyAccountUseCase:  notifyAccountUC,
		notifyUserUseCase:     notifyUserUC,
		notifyAllUsersUseCase: notifyAllUsersUC,
		notifyAdminsUseCase:   notifyAdminsUC,
		logger:                log,
	}
}

type NotifyRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
	Sound bool   `json:"sound"`
	Route string `json:"route"`
}

func (r *NotifyRequest) toCommand() usecases.NotifyCommand {
	return usecases.NotifyCommand{
		Title: r.Title,
		Body:  r.Body,
		Sound: r.Sound,
		Route: r.Route,
	}
}

func (h *NotificationHandler) NotifyAccount(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.notifyAccountUseCase.Execute(c.Request.Context(), usecases.NotifyAccountCommand{
		NotifyCommand: req.toCommand(),
		AccountID:     c.Param("accountId"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "notification dispatched", gin.H{"dispatched": result.Dispatched})
}

func (h *NotificationHandler) NotifyUser(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.notifyUserUseCase.Execute(c.Request.Context(), usecases.NotifyUserCommand{
		NotifyCommand: req.toCommand(),
		UserID:        c.Param("userId"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "notification dispatched", gin.H{"dispatched": result.Dispatched})
}

func (h *NotificationHandler) NotifyAllUsers(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.notifyAllUsersUseCase.Execute(c.Request.Context(), usecases.NotifyAllUsersCommand{
		NotifyCommand: req.toCommand(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "notification dispatched", gin.H{"dispatched": result.Dispatched})
}

func (h *NotificationHandler) NotifyAdmins(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.notifyAdminsUseCase.Execute(c.Request.Context(), usecases.NotifyAdminsCommand{
		NotifyCommand: req.toCommand(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "notification dispatched", gin.H{"dispatched": result.Dispatched})
}
