package handlers

import (
	"net/http"
	"time"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/database"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

type EmotionInput struct {
	Emotion   string `json:"emocion" binding:"required"`
	Intensity int    `json:"intensidad" binding:"required"`
	Note      string `json:"nota"`
}

// CreateEmotionRecord logs one emotional state for the current patient.
func CreateEmotionRecord(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var input EmotionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.IsValidEmotion(input.Emotion) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown emotion"})
		return
	}
	if input.Intensity < 1 || input.Intensity > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "intensidad must be between 1 and 5"})
		return
	}

	record := models.EmotionRecord{
		UserID:    userId,
		Emotion:   input.Emotion,
		Intensity: input.Intensity,
		Note:      input.Note,
		CreatedAt: time.Now(),
	}
	if err := database.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save emotion record"})
		return
	}

	// The garden view is derived from these rows.
	database.CacheInvalidate(gardenCacheKey(userId))

	c.JSON(http.StatusCreated, gin.H{"record": record})
}

// ListEmotionRecords returns the patient's own history, or a linked
// patient's history when a psychologist passes ?patientId=.
func ListEmotionRecords(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	role := c.MustGet("role").(string)

	targetID := userId
	if patientId := c.Query("patientId"); patientId != "" {
		if role != string(models.RolePsychologist) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only psychologists can view other patients"})
			return
		}
		var patient models.User
		err := database.DB.First(&patient, "id = ? AND psychologist_id = ?", patientId, userId).Error
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Patient is not linked to you"})
			return
		}
		targetID = patientId
	}

	var records []models.EmotionRecord
	err := database.DB.
		Where("user_id = ?", targetID).
		Order("created_at DESC").
		Limit(200).
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch emotion records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}
