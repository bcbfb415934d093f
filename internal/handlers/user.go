package handlers

import (
	"net/http"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/chat"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/database"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/Kevin-Teran/miaubloom-sub001/pkg/logger"
	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func UpdateProfile(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var input struct {
		Name       *string `json:"nombre"`
		AvatarIcon *string `json:"avatarIcon"`
		Objective  *string `json:"objetivo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.AvatarIcon != nil {
		user.AvatarIcon = *input.AvatarIcon
	}
	if input.Objective != nil {
		user.Objective = *input.Objective
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListPatients returns the patients linked to the current psychologist.
func ListPatients(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var patients []models.User
	err := database.DB.
		Where("psychologist_id = ? AND role = ?", userId, models.RolePatient).
		Order("name ASC").
		Find(&patients).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch patients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

// LinkPatient attaches a patient (by email) to the current psychologist
// and makes sure their shared conversation exists, so the chat works
// from the first visit.
func LinkPatient(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patient models.User
	err := database.DB.Where("email = ? AND role = ?", input.Email, models.RolePatient).First(&patient).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient account with that email"})
		return
	}

	if patient.PsychologistID != nil && *patient.PsychologistID != userId {
		c.JSON(http.StatusConflict, gin.H{"error": "Patient is already linked to another psychologist"})
		return
	}

	patient.PsychologistID = &userId
	if err := database.DB.Save(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link patient"})
		return
	}

	store := chat.NewStore(database.DB)
	conv, err := store.EnsureConversation(c.Request.Context(), patient.ID, userId)
	if err != nil {
		logger.Error().Err(err).Str("patient", patient.ID).Msg("Failed to ensure conversation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"patient": patient, "conversation": conv})
}
