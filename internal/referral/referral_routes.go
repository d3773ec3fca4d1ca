package referral

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
	referrals := r.Group("/referrals")
	referrals.Use(middleware.AuthMiddleware(resolver))
	{
		referrals.POST("", handler.Submit)
		referrals.GET("/my", handler.ListMine)
		referrals.GET("", middleware.RBACAuthorize(rbacService, "referral", "read"), handler.ListAll)
		referrals.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "referral", "update"), handler.SetStatus)
	}
}
