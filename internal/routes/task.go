package routes

import (
	"github.com/Kevin-Teran/miaubloom-sub001/internal/handlers"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/middleware"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterTaskRoutes(r gin.IRouter) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.POST("", middleware.RequireRole(models.RolePsychologist), handlers.CreateTask)
		tasks.GET("", handlers.ListTasks)
		tasks.PUT("/:id/complete", middleware.RequireRole(models.RolePatient), handlers.CompleteTask)
	}
}
