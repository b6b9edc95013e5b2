package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/incidentline/authcore/internal/constants"
	"github.com/incidentline/authcore/internal/dto"
	apperrors "github.com/incidentline/authcore/internal/errors"
	"github.com/incidentline/authcore/internal/middleware"
	"github.com/incidentline/authcore/internal/service"
	ctxutil "github.com/incidentline/authcore/pkg/context"
	"github.com/incidentline/authcore/pkg/logger"
)

type AuthHandler struct {
	authService      *service.AuthService
	temporaryService *service.TemporaryAccessService
	issuer           *service.SessionIssuer
}

func NewAuthHandler(authService *service.AuthService, temporaryService *service.TemporaryAccessService, issuer *service.SessionIssuer) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		temporaryService: temporaryService,
		issuer:           issuer,
	}
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	c.Request = c.Request.WithContext(ctx)
	response, err := h.authService.Login(c, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout clears the session cookies. It succeeds whether or not a session
// was presented.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "Logout")
	c.Request = c.Request.WithContext(ctx)

	h.authService.Logout(c)

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Logged out"))
}

// Me returns the resolved caller with their client role assignments.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrUnauthorized), constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	c.JSON(http.StatusOK, dto.ResolvedUserResponse{
		UserResponse: dto.UserResponse{
			ID:         user.ID,
			Name:       user.Name,
			Email:      user.Email,
			Role:       user.Role,
			SystemRole: user.SystemRole,
			Avatar:     user.Avatar,
		},
		ClientRoles: user.ClientRoles,
		ClientIDs:   user.ClientIDs,
	})
}

// Token returns the raw session token for the mobile bridge reading the
// current web-side session out of cookies.
func (h *AuthHandler) Token(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrUnauthorized), constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	raw := h.issuer.RawTokenFromRequest(c.Request)
	if raw == "" {
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrUnauthorized), constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	c.JSON(http.StatusOK, dto.SessionTokenResponse{
		Token: raw,
		User: dto.UserResponse{
			ID:         user.ID,
			Name:       user.Name,
			Email:      user.Email,
			Role:       user.Role,
			SystemRole: user.SystemRole,
			Avatar:     user.Avatar,
		},
		Role: user.SystemRole,
	})
}

// TemporaryAccess mints a one-time handoff token for the calling admin.
func (h *AuthHandler) TemporaryAccess(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "TemporaryAccess")

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrUnauthorized), constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	response, err := h.temporaryService.Issue(ctx, user.ID, user.Email)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, response)
}

// ValidateTemporaryAccess redeems a handoff token and establishes a session.
func (h *AuthHandler) ValidateTemporaryAccess(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "ValidateTemporaryAccess")
	c.Request = c.Request.WithContext(ctx)

	response, err := h.authService.ValidateTemporaryAccess(c, c.Query("token"))
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, response)
}
