package auth

import (
	"github.com/HirziKhalis/hrms-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/register",
			middleware.AuthMiddleware(handler.service),
			middleware.RBACAuthorize(rbacService, "user", "create"),
			handler.Register,
		)
		authGroup.GET("/me", middleware.AuthMiddleware(handler.service), handler.GetMe)
	}
}
