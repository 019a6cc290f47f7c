package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/mediawatch/labeling-api/api/types"
)

// RegisterRoutes registers authentication and user management routes.
// Login is public; user management requires an admin principal.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, authenticate, requireAdmin gin.HandlerFunc) {
	router.POST("/login", Login(deps))
	router.GET("/me", authenticate, Me(deps))
	router.POST("/register", authenticate, requireAdmin, Register(deps))
	router.GET("/users", authenticate, requireAdmin, ListUsers(deps))
}
