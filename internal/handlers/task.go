package handlers

import (
	"net/http"
	"time"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/database"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

type TaskInput struct {
	PatientID   string     `json:"patientId" binding:"required"`
	Title       string     `json:"titulo" binding:"required"`
	Description string     `json:"descripcion"`
	DueDate     *time.Time `json:"fechaLimite"`
}

// CreateTask lets a psychologist assign a task to one of their patients.
func CreateTask(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var input TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patient models.User
	err := database.DB.First(&patient, "id = ? AND psychologist_id = ?", input.PatientID, userId).Error
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Patient is not linked to you"})
		return
	}

	task := models.Task{
		PatientID:      input.PatientID,
		PsychologistID: userId,
		Title:          input.Title,
		Description:    input.Description,
		DueDate:        input.DueDate,
		CreatedAt:      time.Now(),
	}
	if err := database.DB.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// ListTasks returns the patient's own tasks, or a linked patient's
// tasks when a psychologist passes ?patientId=.
func ListTasks(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	role := c.MustGet("role").(string)

	query := database.DB.Order("created_at DESC")
	switch {
	case role == string(models.RolePsychologist) && c.Query("patientId") != "":
		query = query.Where("psychologist_id = ? AND patient_id = ?", userId, c.Query("patientId"))
	case role == string(models.RolePsychologist):
		query = query.Where("psychologist_id = ?", userId)
	default:
		query = query.Where("patient_id = ?", userId)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CompleteTask marks one of the patient's own tasks as done.
func CompleteTask(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	taskId := c.Param("id")

	var task models.Task
	if err := database.DB.First(&task, "id = ? AND patient_id = ?", taskId, userId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if !task.Completed {
		now := time.Now()
		task.Completed = true
		task.CompletedAt = &now
		if err := database.DB.Save(&task).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}
