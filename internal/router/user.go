package router

import (
	"github.com/gin-gonic/gin"
	"github.com/incidentline/authcore/internal/constants"
)

func (r *Router) userRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(r.authMw.RequireRole(constants.SystemRoleGlobalAdmin))
	{
		users.POST("", r.userHandler.Create)
		users.GET("", r.userHandler.List)
		users.PATCH("/:id/role", r.userHandler.UpdateRole)
		users.DELETE("/:id", r.userHandler.Delete)
		users.PUT("/:id/client-roles", r.userHandler.UpsertClientRole)
		users.DELETE("/:id/client-roles/:roleId", r.userHandler.DeleteClientRole)
	}
}
