package leave

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
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware(resolver))
	{
		requests.POST("", handler.Submit)
		requests.GET("/my", handler.ListMine)
		requests.GET("/quota", handler.MyQuota)
		requests.GET("/types", handler.ListTypes)
		requests.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListForReview)
		requests.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.SetStatus)
	}

	quotas := r.Group("/leave-quotas")
	quotas.Use(middleware.AuthMiddleware(resolver))
	{
		quotas.GET("", middleware.RBACAuthorize(rbacService, "quota", "read"), handler.QuotaGrid)
		quotas.PUT("/:employeeId", middleware.RBACAuthorize(rbacService, "quota", "update"), handler.UpsertQuotas)
	}
}
