package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"todo-api/internal/controller"
	"todo-api/internal/middleware"
)

// Router assembles the gin engine around the injected handler.
func Router(h *controller.TodoHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	// All origins allowed, per the API contract.
	router.Use(cors.Default())

	router.GET("/", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))

	router.GET("/todos", h.GetTodos)
	router.POST("/todos", h.CreateTodo)
	router.PUT("/todos/:id", h.UpdateTodo)
	router.DELETE("/todos/:id", h.DeleteTodo)

	return router
}
