package attendance

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
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware(resolver))
	{
		attendance.POST("/check-in", handler.CheckIn)
		attendance.POST("/check-out", handler.CheckOut)
		attendance.GET("/my", handler.ListMine)
		attendance.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.ListAll)
	}
}
