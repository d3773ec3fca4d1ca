package user

import (
	"github.com/HirziKhalis/hrms-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	resolver middleware.IdentityResolver,
	rbacService middleware.RBACService,
) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(resolver))
	{
		users.GET("", middleware.RBACAuthorize(rbacService, "user", "read"), handler.List)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, "user", "read"), handler.GetByID)
		users.PATCH("/:id/role", middleware.RBACAuthorize(rbacService, "user", "update"), handler.UpdateRole)
	}
}
