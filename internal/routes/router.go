package routes

import (
	"taskboard/internal/controller"
	"taskboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func Router(h *controller.Controller, tokens middleware.TokenVerifier) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())

	router.GET("/", h.Root)

	// Health for load balancers and K8s probes
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	// Public: no auth
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)

	// Protected: token required
	api := router.Group("/tasks")
	api.Use(middleware.Auth(tokens))
	{
		api.GET("", h.ListTasks)
		api.POST("", h.CreateTask)
		api.DELETE("/:id", h.DeleteTask)
	}

	return router
}
