package routes

import (
	"github.com/Kevin-Teran/miaubloom-sub001/internal/handlers"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/middleware"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterEmotionRoutes(r gin.IRouter) {
	emotions := r.Group("/emotions")
	emotions.Use(middleware.AuthMiddleware())
	{
		emotions.POST("", middleware.RequireRole(models.RolePatient), handlers.CreateEmotionRecord)
		emotions.GET("", handlers.ListEmotionRecords)
	}

	r.GET("/garden", middleware.AuthMiddleware(), middleware.RequireRole(models.RolePatient), handlers.GetGarden)
	r.GET("/statistics", middleware.AuthMiddleware(), handlers.GetStatistics)
}
