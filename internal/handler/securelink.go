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

type SecureLinkHandler struct {
	links *service.SecureLinkService
}

func NewSecureLinkHandler(links *service.SecureLinkService) *SecureLinkHandler {
	return &SecureLinkHandler{links: links}
}

// Create issues a new secure form link. The raw URL and access code appear
// in this response only.
func (h *SecureLinkHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "CreateSecureLink")

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrUnauthorized), constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	var req dto.CreateSecureLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid link creation request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	response, err := h.links.Issue(ctx, user.ID, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Resolve is the recipient-facing lookup. No session is required; the token
// itself is the capability.
func (h *SecureLinkHandler) Resolve(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "ResolveSecureLink")

	response, err := h.links.Resolve(ctx, c.Query("token"))
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, response)
}

// Verify checks an access code against a code-gated link.
func (h *SecureLinkHandler) Verify(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "VerifySecureLink")

	var req dto.VerifySecureLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid verification request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	response, err := h.links.Verify(ctx, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, response)
}

// List returns the links for one incident.
func (h *SecureLinkHandler) List(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "ListSecureLinks")

	incidentID, err := strconv.ParseUint(c.Query("incident_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("incident_id is required", nil))
		return
	}
	includeExpired, _ := strconv.ParseBool(c.DefaultQuery("include_expired", "false"))

	response, err := h.links.List(ctx, uint(incidentID), includeExpired)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, response)
}

// Revoke invalidates a link by id.
func (h *SecureLinkHandler) Revoke(c *gin.Context) {
	ctx := ctxutil.NewRequestContext(c, "handler", "RevokeSecureLink")

	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrUnauthorized), constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid link id", nil))
		return
	}

	if err := h.links.Revoke(ctx, user.ID, uint(linkID)); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Link revoked"))
}
