package handlers

import (
	"errors"
	"net/http"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/chat"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/database"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/relay"
	"github.com/gin-gonic/gin"
)

// GetConversations lists the user's conversations with last message and
// unread count, most recent activity first.
func GetConversations(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	store := chat.NewStore(database.DB)
	summaries, err := store.ListConversations(c.Request.Context(), userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// GetMessages returns the history of one conversation.
func GetMessages(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	conversationId := c.Param("conversationId")

	store := chat.NewStore(database.DB)
	messages, err := store.ListMessages(c.Request.Context(), conversationId, userId)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrConversationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		case errors.Is(err, chat.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this conversation"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage is the HTTP fallback for submitting a message. It goes
// through the same store as the socket path and fans the persisted
// message out to the live room, sender's sockets included.
func SendMessage(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	role := c.MustGet("role").(string)

	var req struct {
		ConversationID string `json:"conversationId" binding:"required"`
		Content        string `json:"contenido" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	store := chat.NewStore(database.DB)
	msg, err := store.CreateMessage(c.Request.Context(), req.ConversationID, userId, role, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrConversationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		case errors.Is(err, chat.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this conversation"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		}
		return
	}

	// Best-effort; the message is already durable.
	_ = store.TouchConversation(c.Request.Context(), req.ConversationID)

	if ChatGateway != nil {
		ChatGateway.ToRoom(req.ConversationID, relay.EventMessageReceived, relay.MessagePayload{Message: msg})
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": msg})
}

// MarkConversationRead flips the other party's unread messages when the
// recipient views the conversation.
func MarkConversationRead(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	conversationId := c.Param("conversationId")

	store := chat.NewStore(database.DB)
	updated, err := store.MarkMessagesRead(c.Request.Context(), conversationId, userId)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrConversationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		case errors.Is(err, chat.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this conversation"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark read"})
		}
		return
	}

	if ChatGateway != nil && updated > 0 {
		for _, member := range ChatGateway.Relay.Rooms().Members(conversationId) {
			ChatGateway.ToConn(member, relay.EventMessageRead, relay.MessageReadPayload{
				ConversationID: conversationId,
				ReaderID:       userId,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"markedRead": updated})
}

// GetUnreadCount answers "how many unread messages does the user have
// across all conversations", recomputed from the store on every call.
func GetUnreadCount(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	store := chat.NewStore(database.DB)
	count, err := store.CountUnreadForUser(c.Request.Context(), userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count unread messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}
