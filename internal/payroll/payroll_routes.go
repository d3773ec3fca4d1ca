package payroll

import (
	"github.com/HirziKhalis/hrms-system/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	resolver middleware.IdentityResolver,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware(resolver))
	{
		payroll.GET("/my", handler.ListMine)
		payroll.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.ListAll)
		payroll.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByID)
		payroll.POST("",
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		payroll.PATCH("/:id/paid", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.MarkPaid)
	}
}
