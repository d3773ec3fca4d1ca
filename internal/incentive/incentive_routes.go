package incentive

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
	incentives := r.Group("/incentives")
	incentives.Use(middleware.AuthMiddleware(resolver))
	{
		incentives.GET("/my", handler.ListMine)
		incentives.GET("", middleware.RBACAuthorize(rbacService, "incentive", "read"), handler.ListAll)
		incentives.POST("", middleware.RBACAuthorize(rbacService, "incentive", "create"), handler.Create)
	}
}
