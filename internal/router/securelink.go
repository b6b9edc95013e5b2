package router

import (
	"github.com/gin-gonic/gin"
)

func (r *Router) secureLinkRoutes(rg *gin.RouterGroup) {
	links := rg.Group("/secure-form-links")
	{
		// Recipient-facing: the token is the capability, no session needed.
		links.GET("/resolve", r.secureLinkHandler.Resolve)
		links.POST("/verify",
			r.limiter.Limit("verify", r.Config.RateLimit.VerifyMax, r.Config.RateLimit.Window),
			r.secureLinkHandler.Verify)

		// Staff-facing: any authenticated user.
		authed := links.Group("")
		authed.Use(r.authMw.RequireRole())
		{
			authed.POST("", r.secureLinkHandler.Create)
			authed.GET("", r.secureLinkHandler.List)
			authed.POST("/:id/revoke", r.secureLinkHandler.Revoke)
		}
	}
}
