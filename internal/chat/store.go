// Package chat is the persistence collaborator behind the real-time
// relay: conversations and messages live here, the relay only holds
// transient room membership.
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrConversationNotFound means the referenced conversation does not exist.
	ErrConversationNotFound = errors.New("conversation not found")
	// ErrNotParticipant means the user is not one of the conversation's two sides.
	ErrNotParticipant = errors.New("user is not a participant of the conversation")
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// EnsureConversation returns the single conversation for the given pair,
// creating it if it does not exist yet.
func (s *Store) EnsureConversation(ctx context.Context, patientID, psychologistID string) (models.Conversation, error) {
	var conv models.Conversation
	err := s.db.WithContext(ctx).
		Where(models.Conversation{PatientID: patientID, PsychologistID: psychologistID}).
		Attrs(models.Conversation{LastMessageAt: time.Now()}).
		FirstOrCreate(&conv).Error
	return conv, err
}

func (s *Store) GetConversation(ctx context.Context, conversationID string) (models.Conversation, error) {
	var conv models.Conversation
	err := s.db.WithContext(ctx).First(&conv, "id = ?", conversationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return conv, ErrConversationNotFound
	}
	return conv, err
}

// CreateMessage persists a message after checking that the sender is a
// participant. The stored sender role is derived from which side of the
// conversation the sender is on; a claimed role that contradicts it is
// rejected the same way as a non-participant.
func (s *Store) CreateMessage(ctx context.Context, conversationID, senderID, senderRole, content string) (models.Message, error) {
	var msg models.Message

	conv, err := s.GetConversation(ctx, conversationID)
	if err != nil {
		return msg, err
	}

	role := conv.RoleOf(senderID)
	if role == "" {
		return msg, ErrNotParticipant
	}
	if senderRole != "" && models.Role(senderRole) != role {
		return msg, ErrNotParticipant
	}

	msg = models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderRole:     role,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// TouchConversation bumps the conversation's last-activity timestamp.
func (s *Store) TouchConversation(ctx context.Context, conversationID string) error {
	res := s.db.WithContext(ctx).Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("last_message_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConversationNotFound
	}
	return nil
}

// MarkMessagesRead flips every unread message in the conversation that
// was authored by the other party. Returns the number of rows updated.
func (s *Store) MarkMessagesRead(ctx context.Context, conversationID, readerID string) (int64, error) {
	conv, err := s.GetConversation(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	if !conv.Participant(readerID) {
		return 0, ErrNotParticipant
	}

	res := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND leido = ?", conversationID, readerID, false).
		Updates(map[string]interface{}{
			"leido":   true,
			"read_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

// CountUnreadForUser counts, across all of the user's conversations, the
// messages addressed to them that are not yet read. Always recomputed
// from the store; volumes are small.
func (s *Store) CountUnreadForUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("conversations.patient_id = ? OR conversations.psychologist_id = ?", userID, userID).
		Where("messages.sender_id <> ? AND messages.leido = ?", userID, false).
		Count(&count).Error
	return count, err
}

// ConversationSummary is one row of the conversation list view.
type ConversationSummary struct {
	Conversation models.Conversation `json:"conversation"`
	Partner      models.User         `json:"partner"`
	LastMessage  *models.Message     `json:"lastMessage,omitempty"`
	UnreadCount  int64               `json:"unreadCount"`
}

// ListConversations returns the user's conversations ordered by recent
// activity, each with the partner profile, last message and unread count.
// One query per conversation is fine at this scale.
func (s *Store) ListConversations(ctx context.Context, userID string) ([]ConversationSummary, error) {
	var convs []models.Conversation
	err := s.db.WithContext(ctx).
		Where("patient_id = ? OR psychologist_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		partnerID := conv.PatientID
		if partnerID == userID {
			partnerID = conv.PsychologistID
		}

		var partner models.User
		if err := s.db.WithContext(ctx).First(&partner, "id = ?", partnerID).Error; err != nil {
			return nil, err
		}

		summary := ConversationSummary{Conversation: conv, Partner: partner}

		var last models.Message
		err := s.db.WithContext(ctx).
			Where("conversation_id = ?", conv.ID).
			Order("created_at DESC").
			First(&last).Error
		if err == nil {
			summary.LastMessage = &last
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		err = s.db.WithContext(ctx).Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id <> ? AND leido = ?", conv.ID, userID, false).
			Count(&summary.UnreadCount).Error
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ListMessages returns the conversation history in chronological order.
// The caller must be a participant.
func (s *Store) ListMessages(ctx context.Context, conversationID, userID string) ([]models.Message, error) {
	conv, err := s.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Participant(userID) {
		return nil, ErrNotParticipant
	}

	var messages []models.Message
	err = s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
