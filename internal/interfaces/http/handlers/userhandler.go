package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/application/user/usecases"
	"tally/internal/domain/user"
	"tally/internal/shared/biztime"
	"tally/internal/shared/constants"
	"tally/internal/shared/logger"
	"tally/internal/shared/utils"
)

type UserHandler struct {
	createUserUseCase        *usecases.CreateUserUseCase
	getMyUserUseCase         *usecases.GetMyUserUseCase
	listUsersUseCase         *usecases.ListUsersUseCase
	deleteUserUseCase        *usecases.DeleteUserUseCase
	setProfilePictureUseCase *usecases.SetProfilePictureUseCase
	logger                   logger.Interface
}

func NewUserHandler(
	createUserUC *usecases.CreateUserUseCase,
	getMyUserUC *usecases.GetMyUserUseCase,
	listUsersUC *usecases.ListUsersUseCase,
	deleteUserUC *usecases.DeleteUserUseCase,
	setProfilePictureUC *usecases.SetProfilePictureUseCase,
	log logger.Interface,
) *UserHandler {
	return &UserHandler{
		createUserUseCase:        createUserUC,
		getMyUserUseCase:         getMyUserUC,
		listUsersUseCase:         listUsersUC,
		deleteUserUseCase:        deleteUserUC,
		setProfilePictureUseCase: setProfilePictureUC,
		logger:                   log,
	}
}

type CreateUserRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	IsTemporary  bool   `json:"is_temporary"`
	PriceRanking string `json:"price_ranking" binding:"required,oneof=regular member guest"`
	Permissions  string `json:"permissions" binding:"required,oneof=admin user"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createUserUseCase.Execute(c.Request.Context(), usecases.CreateUserCommand{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsTemporary:  req.IsTemporary,
		PriceRanking: req.PriceRanking,
		Permissions:  req.Permissions,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, serializeUser(result.User))
}

func (h *UserHandler) Me(c *gin.Context) {
	result, err := h.getMyUserUseCase.Execute(c.Request.Context(), usecases.GetMyUserCommand{
		AccountID: c.GetString(constants.ContextKeyAccountID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", serializeUser(result.User))
}

func (h *UserHandler) List(c *gin.Context) {
	result, err := h.listUsersUseCase.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	users := make([]gin.H, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, serializeUser(u))
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"users": users})
}

func (h *UserHandler) Delete(c *gin.Context) {
	err := h.deleteUserUseCase.Execute(c.Request.Context(), usecases.DeleteUserCommand{
		UserID: c.Param("userId"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user deleted", nil)
}

type ProfilePictureRequest struct {
	Path string `json:"path" binding:"required"`
}

func (h *UserHandler) SetProfilePicture(c *gin.Context) {
	var req ProfilePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.setProfilePictureUseCase.Execute(c.Request.Context(), usecases.SetProfilePictureCommand{
		UserID: c.Param("userId"),
		Path:   req.Path,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "profile picture updated", nil)
}

func serializeUser(u *user.User) gin.H {
	out := gin.H{
		"user_id":       u.UserID,
		"first_name":    u.Name.First(),
		"last_name":     u.Name.Last(),
		"created_at":    biztime.FormatRFC3339(u.CreatedAt),
		"is_temporary":  u.IsTemporary,
		"price_ranking": string(u.PriceRanking),
		"permissions":   string(u.Permissions),
	}
	if u.ProfilePicturePath != nil {
		out["profile_picture_path"] = *u.ProfilePicturePath
	}
	return out
}
