package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/incidentline/authcore/internal/constants"
	"github.com/incidentline/authcore/internal/dto"
	apperrors "github.com/incidentline/authcore/internal/errors"
	"github.com/incidentline/authcore/internal/middleware"
	"github.com/incidentline/authcore/internal/service"
	ctxutil "github.com/incidentline/authcore/pkg/context"
	"github.com/incidentline/authcore/pkg/logger"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create provisions a new account.
func (h *UserHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "CreateUser")

	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrUnauthorized), constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid user creation request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	response, err := h.users.CreateUser(ctx, actor.ID, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusCreated, response)
}

// List returns all accounts.
func (h *UserHandler) List(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "ListUsers")

	response, err := h.users.List(ctx)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateRole moves a user between system roles.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "UpdateSystemRole")

	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrUnauthorized), constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid user id", nil))
		return
	}

	var req dto.UpdateSystemRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	if err := h.users.UpdateSystemRole(ctx, actor.ID, uint(userID), req.SystemRole); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Role updated"))
}

// Delete removes an account.
func (h *UserHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "DeleteUser")

	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrUnauthorized), constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid user id", nil))
		return
	}

	if err := h.users.DeleteUser(ctx, actor.ID, uint(userID)); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("User deleted"))
}

// UpsertClientRole assigns or replaces a user's role on one client.
func (h *UserHandler) UpsertClientRole(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "UpsertClientRole")

	actor := middleware.CurrentUser(c)
	if actor == nil {
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrUnauthorized), constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid user id", nil))
		return
	}

	var req dto.UpsertClientRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	response, err := h.users.UpsertClientRole(ctx, actor.ID, uint(userID), &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteClientRole removes one client role assignment.
func (h *UserHandler) DeleteClientRole(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "DeleteClientRole")

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid user id", nil))
		return
	}
	roleID, err := strconv.ParseUint(c.Param("roleId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid role id", nil))
		return
	}

	if err := h.users.DeleteClientRole(ctx, uint(roleID), uint(userID)); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Client role removed"))
}
