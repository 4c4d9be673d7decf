package http

import (
	"github.com/gin-gonic/gin"
	"github.com/quantor-dev/cerberus/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService) *gin.Engine {
	router := gin.Default()

	handlers := NewAuthHandlers(authService)

	// User routes
	router.GET("/users", handlers.ListUsers)
	router.POST("/users", handlers.Register)
	router.POST("/users/login", handlers.Login)

	// Token lifecycle
	router.POST("/token", handlers.Refresh)
	router.DELETE("/logout", handlers.Logout)

	// Protected API routes
	api := router.Group("/api")
	api.Use(AuthMiddleware(authService))
	{
		api.GET("/me", handlers.Me)
	}

	return router
}
