package routes

import (
	"github.com/Kevin-Teran/miaubloom-sub001/internal/handlers"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterChatRoutes(r gin.IRouter) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.GET("/conversations", handlers.GetConversations)
		chat.GET("/conversations/:conversationId/messages", handlers.GetMessages)
		chat.POST("/messages", middleware.ChatRateLimit(), handlers.SendMessage)
		chat.POST("/conversations/:conversationId/read", handlers.MarkConversationRead)
		chat.GET("/unread-count", handlers.GetUnreadCount)
	}
}
