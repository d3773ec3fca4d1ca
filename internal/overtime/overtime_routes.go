package overtime

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
	overtime := r.Group("/overtime")
	overtime.Use(middleware.AuthMiddleware(resolver))
	{
		overtime.POST("", handler.Submit)
		overtime.GET("/my", handler.ListMine)
		overtime.GET("", middleware.RBACAuthorize(rbacService, "overtime", "read"), handler.ListAll)
		overtime.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "overtime", "approve"), handler.SetStatus)
	}
}
