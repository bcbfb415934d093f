package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentDone      AppointmentStatus = "done"
)

// Appointment is a session scheduled by a psychologist with a patient.
type Appointment struct {
	ID             string            `gorm:"primaryKey;type:text" json:"id"`
	PatientID      string            `gorm:"index;not null" json:"patientId"`
	PsychologistID string            `gorm:"index;not null" json:"psychologistId"`
	ScheduledAt    time.Time         `gorm:"not null" json:"fecha"`
	DurationMin    int               `gorm:"default:60" json:"duracionMin"`
	Status         AppointmentStatus `gorm:"type:text;default:'scheduled'" json:"estado"`
	Notes          string            `gorm:"type:text" json:"notas"`
	CreatedAt      time.Time         `json:"createdAt"`

	Patient      User `gorm:"foreignKey:PatientID" json:"-"`
	Psychologist User `gorm:"foreignKey:PsychologistID" json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
