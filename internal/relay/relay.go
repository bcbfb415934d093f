// Package relay is the real-time core of MiauBloom: it turns inbound
// socket events into durable messages plus room fan-out, forwards
// ephemeral typing/read signals, and tracks transient room membership.
// Persistence is delegated to a collaborator store; the relay never
// holds authoritative data.
package relay

import (
	"context"
	"errors"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/chat"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/rs/zerolog"
)

// Store is the persistence collaborator consumed by the relay.
type Store interface {
	CreateMessage(ctx context.Context, conversationID, senderID, senderRole, content string) (models.Message, error)
	TouchConversation(ctx context.Context, conversationID string) error
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) (int64, error)
}

// Broadcaster abstracts the transport's delivery primitives. ToRoom
// reaches every connection joined to the conversation's transport room
// (including the sender); ToConn reaches exactly one connection.
type Broadcaster interface {
	ToRoom(conversationID, event string, payload interface{})
	ToConn(connID, event string, payload interface{})
}

// Identity is the authenticated principal bound to a connection at
// handshake time. A zero Identity means the connection never presented
// a valid token.
type Identity struct {
	UserID string
	Role   string
}

func (id Identity) authenticated() bool {
	return id.UserID != ""
}

// Relay coordinates the room table, the persistence store and the
// transport broadcaster. All state it owns is the transient RoomTable.
type Relay struct {
	rooms *RoomTable
	store Store
	bc    Broadcaster
	log   zerolog.Logger
}

func New(store Store, bc Broadcaster, log zerolog.Logger) *Relay {
	return &Relay{
		rooms: NewRoomTable(),
		store: store,
		bc:    bc,
		log:   log,
	}
}

// Rooms exposes the membership table for transport bookkeeping and tests.
func (r *Relay) Rooms() *RoomTable {
	return r.rooms
}

// Join subscribes the connection to a conversation's presence
// bookkeeping and tells the other members. Idempotent.
func (r *Relay) Join(connID string, id Identity, p RoomPayload) error {
	if !id.authenticated() {
		r.rejectConn(connID, CodeUnauthenticated, "authentication required")
		return errors.New(CodeUnauthenticated)
	}
	if p.ConversationID == "" {
		r.rejectConn(connID, CodeBadRequest, "conversationId required")
		return errors.New(CodeBadRequest)
	}

	r.rooms.Join(p.ConversationID, connID)
	r.notifyOthers(p.ConversationID, connID, EventUserJoined, UserPayload{UserID: id.UserID})
	r.log.Debug().Str("conn", connID).Str("conversation", p.ConversationID).Str("user", id.UserID).Msg("joined room")
	return nil
}

// Leave unsubscribes the connection and tells the remaining members.
func (r *Relay) Leave(connID string, id Identity, p RoomPayload) error {
	if !id.authenticated() {
		r.rejectConn(connID, CodeUnauthenticated, "authentication required")
		return errors.New(CodeUnauthenticated)
	}
	if p.ConversationID == "" {
		r.rejectConn(connID, CodeBadRequest, "conversationId required")
		return errors.New(CodeBadRequest)
	}

	r.rooms.Leave(p.ConversationID, connID)
	r.notifyOthers(p.ConversationID, connID, EventUserLeft, UserPayload{UserID: id.UserID})
	return nil
}

// SendMessage persists the message, then broadcasts the server-assigned
// result to the whole room, sender included, so the sender's UI can
// reconcile optimistic state. On any store failure the origin gets a
// typed error and nothing is broadcast; the message either exists with
// a server id and was broadcast, or was never created. Joining the room
// first is not a precondition for sending.
func (r *Relay) SendMessage(ctx context.Context, connID string, id Identity, p SendMessagePayload) error {
	if !id.authenticated() {
		r.rejectConn(connID, CodeUnauthenticated, "authentication required")
		return errors.New(CodeUnauthenticated)
	}
	if p.ConversationID == "" || p.Content == "" {
		r.rejectConn(connID, CodeBadRequest, "conversationId and contenido required")
		return errors.New(CodeBadRequest)
	}

	msg, err := r.store.CreateMessage(ctx, p.ConversationID, id.UserID, id.Role, p.Content)
	if err != nil {
		code, reason := storeErrorCode(err)
		r.log.Warn().Err(err).Str("conversation", p.ConversationID).Str("user", id.UserID).Msg("send rejected")
		r.rejectConn(connID, code, reason)
		return err
	}

	// Last-activity bump is best-effort; the message is already durable.
	if err := r.store.TouchConversation(ctx, p.ConversationID); err != nil {
		r.log.Warn().Err(err).Str("conversation", p.ConversationID).Msg("touch conversation failed")
	}

	r.bc.ToRoom(p.ConversationID, EventMessageReceived, MessagePayload{Message: msg})
	return nil
}

// Typing relays an ephemeral typing signal to the other room members.
func (r *Relay) Typing(connID string, id Identity, p RoomPayload) {
	r.relayPresence(connID, id, p, EventUserTyping)
}

// StopTyping relays the matching stop signal.
func (r *Relay) StopTyping(connID string, id Identity, p RoomPayload) {
	r.relayPresence(connID, id, p, EventUserStopTyping)
}

// MarkRead notifies the other members of the read receipt and, as a
// separate best-effort concern, asks the store to flip the other
// party's unread messages. Store failure does not suppress the
// notification; the origin still learns about it via an error payload.
func (r *Relay) MarkRead(ctx context.Context, connID string, id Identity, p MarkReadPayload) {
	if !id.authenticated() {
		r.rejectConn(connID, CodeUnauthenticated, "authentication required")
		return
	}
	if p.ConversationID == "" {
		r.rejectConn(connID, CodeBadRequest, "conversationId required")
		return
	}

	r.notifyOthers(p.ConversationID, connID, EventMessageRead, MessageReadPayload{
		ConversationID: p.ConversationID,
		MessageID:      p.MessageID,
		ReaderID:       id.UserID,
	})

	if _, err := r.store.MarkMessagesRead(ctx, p.ConversationID, id.UserID); err != nil {
		code, reason := storeErrorCode(err)
		r.log.Warn().Err(err).Str("conversation", p.ConversationID).Str("user", id.UserID).Msg("mark read failed")
		r.rejectConn(connID, code, reason)
	}
}

// Disconnect prunes the connection from every room and tells the
// remaining members. In-flight sends that already reached the store
// still complete; their broadcast simply has one fewer recipient.
func (r *Relay) Disconnect(connID string, id Identity) {
	affected := r.rooms.DropConn(connID)
	if !id.authenticated() {
		return
	}
	for _, conversationID := range affected {
		r.notifyOthers(conversationID, connID, EventUserLeft, UserPayload{UserID: id.UserID})
	}
}

func (r *Relay) relayPresence(connID string, id Identity, p RoomPayload, event string) {
	if !id.authenticated() {
		r.rejectConn(connID, CodeUnauthenticated, "authentication required")
		return
	}
	if p.ConversationID == "" {
		r.rejectConn(connID, CodeBadRequest, "conversationId required")
		return
	}
	r.notifyOthers(p.ConversationID, connID, event, UserPayload{UserID: id.UserID})
}

// notifyOthers fans an ephemeral event out to every room member except
// the originating connection. Fire and forget.
func (r *Relay) notifyOthers(conversationID, exceptConnID, event string, payload interface{}) {
	for _, member := range r.rooms.Members(conversationID) {
		if member == exceptConnID {
			continue
		}
		r.bc.ToConn(member, event, payload)
	}
}

// rejectConn sends a typed error to the originating connection only.
// Failures are terminal for the single event that caused them; the
// connection itself is never torn down.
func (r *Relay) rejectConn(connID, code, message string) {
	r.bc.ToConn(connID, EventError, ErrorPayload{Code: code, Message: message})
}

func storeErrorCode(err error) (code, reason string) {
	switch {
	case errors.Is(err, chat.ErrConversationNotFound):
		return CodeNotFound, "conversation not found"
	case errors.Is(err, chat.ErrNotParticipant):
		return CodeForbidden, "not a participant of this conversation"
	default:
		return CodePersistence, "could not persist the operation"
	}
}
