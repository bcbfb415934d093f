package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RolePatient      Role = "patient"
	RolePsychologist Role = "psychologist"
)

// IsValidRole reports whether s names one of the two MiauBloom roles.
func IsValidRole(s string) bool {
	return Role(s) == RolePatient || Role(s) == RolePsychologist
}

type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `json:"nombre"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"`
	Role     Role   `gorm:"type:text;not null" json:"rol"`

	// Profile
	AvatarIcon string `json:"avatarIcon"`
	Objective  string `json:"objetivo"`

	// Patients are linked to at most one treating psychologist.
	PsychologistID *string `gorm:"index" json:"psychologistId,omitempty"`

	// Password recovery
	ResetToken       string    `json:"-"`
	ResetTokenExpiry time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
