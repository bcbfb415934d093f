package relay

import "github.com/Kevin-Teran/miaubloom-sub001/internal/models"

// Client -> server events.
const (
	EventJoinRoom    = "join-room"
	EventLeaveRoom   = "leave-room"
	EventSendMessage = "send-message"
	EventTyping      = "typing"
	EventStopTyping  = "stop-typing"
	EventMarkRead    = "mark-read"
)

// Server -> client events.
const (
	EventUserJoined      = "user-joined"
	EventUserLeft        = "user-left"
	EventMessageReceived = "message-received"
	EventUserTyping      = "user-typing"
	EventUserStopTyping  = "user-stop-typing"
	EventMessageRead     = "message-read"
	EventError           = "error"
)

// Error codes carried by error payloads.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeBadRequest      = "BAD_REQUEST"
	CodePersistence     = "PERSISTENCE"
)

// Client -> server payloads. Each event has a fixed shape, validated
// before dispatch; the connection's authenticated identity is always
// authoritative over any user id a client puts in a payload.

type RoomPayload struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
}

type SendMessagePayload struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"contenido"`
	UserID         string `json:"userId"`
	Role           string `json:"rol"`
}

type MarkReadPayload struct {
	ConversationID string `json:"conversationId"`
	MessageID      string `json:"messageId"`
}

// Server -> client payloads.

type UserPayload struct {
	UserID string `json:"userId"`
}

type MessagePayload struct {
	Message models.Message `json:"mensaje"`
}

type MessageReadPayload struct {
	ConversationID string `json:"conversationId"`
	MessageID      string `json:"messageId,omitempty"`
	ReaderID       string `json:"readerId"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
