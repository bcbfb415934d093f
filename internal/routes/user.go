package routes

import (
	"github.com/Kevin-Teran/miaubloom-sub001/internal/handlers"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/middleware"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", handlers.GetProfile)
		users.PUT("/me", handlers.UpdateProfile)
	}

	psy := r.Group("/patients")
	psy.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RolePsychologist))
	{
		psy.GET("", handlers.ListPatients)
		psy.POST("/link", handlers.LinkPatient)
	}
}
