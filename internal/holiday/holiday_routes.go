package holiday

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
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware(resolver))
	{
		holidays.GET("", handler.GetAll)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "create"), handler.Create)
		holidays.POST("/import", middleware.RBACAuthorize(rbacService, "holiday", "create"), handler.Import)
	}
}
