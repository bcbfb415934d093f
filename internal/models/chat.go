package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is the single 1:1 channel between a patient and their
// psychologist. Exactly one row exists per (patient, psychologist) pair.
type Conversation struct {
	ID             string    `gorm:"primaryKey;type:text" json:"id"`
	PatientID      string    `gorm:"index:idx_conv_pair,unique;not null" json:"patientId"`
	PsychologistID string    `gorm:"index:idx_conv_pair,unique;not null" json:"psychologistId"`
	LastMessageAt  time.Time `json:"lastMessageAt"`
	CreatedAt      time.Time `json:"createdAt"`

	Patient      User `gorm:"foreignKey:PatientID" json:"-"`
	Psychologist User `gorm:"foreignKey:PsychologistID" json:"-"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// Participant reports whether userID is one of the conversation's two sides.
func (c *Conversation) Participant(userID string) bool {
	return c.PatientID == userID || c.PsychologistID == userID
}

// RoleOf returns the role userID plays in the conversation, or "" when
// the user is not a participant.
func (c *Conversation) RoleOf(userID string) Role {
	switch userID {
	case c.PatientID:
		return RolePatient
	case c.PsychologistID:
		return RolePsychologist
	}
	return ""
}

// Message belongs to exactly one conversation. The read flag only ever
// moves from false to true, and only by the recipient's mark-read.
// Wire field names (contenido, leido, rol) follow the existing client
// contract.
type Message struct {
	ID             string `gorm:"primaryKey;type:text" json:"id"`
	ConversationID string `gorm:"index;not null" json:"conversationId"`
	SenderID       string `gorm:"index;not null" json:"senderId"`
	SenderRole     Role   `gorm:"type:text;not null" json:"rol"`
	Content        string `gorm:"type:text;not null" json:"contenido"`

	Read   bool       `gorm:"column:leido;default:false" json:"leido"`
	ReadAt *time.Time `json:"readAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
