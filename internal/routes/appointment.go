package routes

import (
	"github.com/Kevin-Teran/miaubloom-sub001/internal/handlers"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/middleware"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterAppointmentRoutes(r gin.IRouter) {
	appts := r.Group("/appointments")
	appts.Use(middleware.AuthMiddleware())
	{
		appts.POST("", middleware.RequireRole(models.RolePsychologist), handlers.CreateAppointment)
		appts.GET("", handlers.ListAppointments)
		appts.PUT("/:id/cancel", handlers.CancelAppointment)
	}
}
