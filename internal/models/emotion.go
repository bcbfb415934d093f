package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Emotion kinds a patient can log. Each maps to a flower in the garden view.
const (
	EmotionHappiness = "felicidad"
	EmotionSadness   = "tristeza"
	EmotionAnger     = "enojo"
	EmotionFear      = "miedo"
	EmotionCalm      = "calma"
)

var EmotionKinds = []string{
	EmotionHappiness, EmotionSadness, EmotionAnger, EmotionFear, EmotionCalm,
}

func IsValidEmotion(kind string) bool {
	for _, e := range EmotionKinds {
		if e == kind {
			return true
		}
	}
	return false
}

// EmotionRecord is one logged emotional state of a patient.
type EmotionRecord struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	UserID    string    `gorm:"index;not null" json:"userId"`
	Emotion   string    `gorm:"type:text;not null" json:"emocion"`
	Intensity int       `gorm:"not null" json:"intensidad"` // 1..5
	Note      string    `gorm:"type:text" json:"nota"`
	CreatedAt time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (r *EmotionRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
