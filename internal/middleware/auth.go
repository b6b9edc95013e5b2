package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/incidentline/authcore/internal/constants"
	"github.com/incidentline/authcore/internal/dto"
	apperrors "github.com/incidentline/authcore/internal/errors"
	"github.com/incidentline/authcore/internal/repository"
	"github.com/incidentline/authcore/internal/service"
	ctxutil "github.com/incidentline/authcore/pkg/context"
	"github.com/incidentline/authcore/pkg/logger"
	"gorm.io/gorm"
)

const currentUserKey = "current-user"

// AuthenticatedUser is the fully resolved caller attached to the request
// after RequireRole passes: the live database row plus the client role
// assignments every tenant-scoped query filters against.
type AuthenticatedUser struct {
	ID          uint
	Name        string
	Email       string
	Role        string
	SystemRole  string
	Avatar      string
	ClientRoles []dto.ClientRoleResponse
	ClientIDs   []uint
}

// AuthMiddleware resolves session cookies into authenticated users. Claims
// identify the caller but never authorize on their own: the account is
// re-read on every request, so deletions take effect immediately.
type AuthMiddleware struct {
	issuer      *service.SessionIssuer
	users       *repository.UserRepository
	clientRoles *repository.ClientRoleRepository
}

func NewAuthMiddleware(issuer *service.SessionIssuer, users *repository.UserRepository, clientRoles *repository.ClientRoleRepository) *AuthMiddleware {
	return &AuthMiddleware{
		issuer:      issuer,
		users:       users,
		clientRoles: clientRoles,
	}
}

// RequireRole gates a route behind authentication and, when the allow-list
// is non-empty, behind role membership. An empty allow-list admits any
// authenticated user. Roles are matched against the effective system role
// and, for compatibility with pre-migration accounts, the raw legacy role.
func (m *AuthMiddleware) RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.NewRequestContext(c, "middleware", "RequireRole")

		claims := m.issuer.DecodeFromRequest(c.Request)
		if claims == nil {
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}

		user, err := m.users.GetByEmail(ctx, claims.Email)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				logger.WarnWithContext(ctx, "Valid session for deleted account").
					String("email", claims.Email).
					Log()
				abortWithError(c, apperrors.ErrAccountNotFound)
				return
			}
			abortWithError(c, apperrors.WrapError(apperrors.ErrInternal, err))
			return
		}

		effective := user.EffectiveRole()
		if len(allowed) > 0 && !roleAllowed(allowed, effective, user.Role) {
			logger.WarnWithContext(ctx, "Role check failed").
				Uint("user_id", user.ID).
				String("system_role", effective).
				Log()
			abortWithError(c, apperrors.ErrForbidden)
			return
		}

		assignments, err := m.clientRoles.ListByUser(ctx, user.ID)
		if err != nil {
			abortWithError(c, apperrors.WrapError(apperrors.ErrInternal, err))
			return
		}

		clientRoles := make([]dto.ClientRoleResponse, 0, len(assignments))
		clientIDs := make([]uint, 0, len(assignments))
		for _, a := range assignments {
			clientRoles = append(clientRoles, dto.ClientRoleResponse{
				ID:          a.ID,
				ClientID:    a.ClientID,
				CompanyRole: a.CompanyRole,
			})
			clientIDs = append(clientIDs, a.ClientID)
		}

		c.Set(currentUserKey, &AuthenticatedUser{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			Role:        user.Role,
			SystemRole:  effective,
			Avatar:      user.Avatar,
			ClientRoles: clientRoles,
			ClientIDs:   clientIDs,
		})

		reqCtx := ctxutil.WithUserID(c.Request.Context(), user.ID)
		reqCtx = ctxutil.WithUserEmail(reqCtx, user.Email)
		c.Request = c.Request.WithContext(reqCtx)

		c.Next()
	}
}

func roleAllowed(allowed []string, effective, legacy string) bool {
	for _, role := range allowed {
		if role == effective || (legacy != "" && role == legacy) {
			return true
		}
	}
	return false
}

// CurrentUser returns the resolved caller, or nil outside RequireRole.
func CurrentUser(c *gin.Context) *AuthenticatedUser {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*AuthenticatedUser); ok {
			return user
		}
	}
	return nil
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(
		apperrors.ToHTTPStatus(err),
		constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil),
	)
}
