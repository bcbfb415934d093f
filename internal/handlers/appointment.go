package handlers

import (
	"net/http"
	"time"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/database"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

type AppointmentInput struct {
	PatientID   string    `json:"patientId" binding:"required"`
	ScheduledAt time.Time `json:"fecha" binding:"required"`
	DurationMin int       `json:"duracionMin"`
	Notes       string    `json:"notas"`
}

// CreateAppointment schedules a session with a linked patient.
func CreateAppointment(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var input AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.ScheduledAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment must be in the future"})
		return
	}

	var patient models.User
	err := database.DB.First(&patient, "id = ? AND psychologist_id = ?", input.PatientID, userId).Error
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Patient is not linked to you"})
		return
	}

	appt := models.Appointment{
		PatientID:      input.PatientID,
		PsychologistID: userId,
		ScheduledAt:    input.ScheduledAt,
		DurationMin:    input.DurationMin,
		Status:         models.AppointmentScheduled,
		Notes:          input.Notes,
		CreatedAt:      time.Now(),
	}
	if appt.DurationMin <= 0 {
		appt.DurationMin = 60
	}
	if err := database.DB.Create(&appt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// ListAppointments returns upcoming appointments for either role.
func ListAppointments(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	role := c.MustGet("role").(string)

	query := database.DB.
		Where("status = ? AND scheduled_at >= ?", models.AppointmentScheduled, time.Now()).
		Order("scheduled_at ASC")
	if role == string(models.RolePsychologist) {
		query = query.Where("psychologist_id = ?", userId)
	} else {
		query = query.Where("patient_id = ?", userId)
	}

	var appts []models.Appointment
	if err := query.Find(&appts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// CancelAppointment lets either participant cancel a scheduled session.
func CancelAppointment(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	apptId := c.Param("id")

	var appt models.Appointment
	err := database.DB.First(&appt, "id = ? AND (patient_id = ? OR psychologist_id = ?)", apptId, userId, userId).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	if appt.Status != models.AppointmentScheduled {
		c.JSON(http.StatusConflict, gin.H{"error": "Appointment is not cancellable"})
		return
	}

	appt.Status = models.AppointmentCancelled
	if err := database.DB.Save(&appt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}
