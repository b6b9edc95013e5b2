package router

import (
	"github.com/gin-gonic/gin"
	"github.com/incidentline/authcore/internal/constants"
)

func (r *Router) authRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login",
			r.limiter.Limit("login", r.Config.RateLimit.LoginMax, r.Config.RateLimit.Window),
			r.authHandler.Login)
		auth.POST("/logout", r.authHandler.Logout)

		auth.GET("/validate-temporary-access",
			r.limiter.Limit("validate-temporary-access", r.Config.RateLimit.VerifyMax, r.Config.RateLimit.Window),
			r.authHandler.ValidateTemporaryAccess)

		// Any authenticated user may introspect their own session.
		auth.GET("/me", r.authMw.RequireRole(), r.authHandler.Me)
		auth.GET("/token", r.authMw.RequireRole(), r.authHandler.Token)

		auth.GET("/temporary-access",
			r.authMw.RequireRole(constants.SystemRoleGlobalAdmin),
			r.authHandler.TemporaryAccess)
	}
}
