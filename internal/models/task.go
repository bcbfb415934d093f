package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is an activity a psychologist assigns to one of their patients.
type Task struct {
	ID             string     `gorm:"primaryKey;type:text" json:"id"`
	PatientID      string     `gorm:"index;not null" json:"patientId"`
	PsychologistID string     `gorm:"index;not null" json:"psychologistId"`
	Title          string     `gorm:"type:text;not null" json:"titulo"`
	Description    string     `gorm:"type:text" json:"descripcion"`
	DueDate        *time.Time `json:"fechaLimite,omitempty"`
	Completed      bool       `gorm:"default:false" json:"completada"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`

	Patient      User `gorm:"foreignKey:PatientID" json:"-"`
	Psychologist User `gorm:"foreignKey:PsychologistID" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}
