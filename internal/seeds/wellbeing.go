package seeds

import (
	"log"
	"time"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/database"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
)

// SeedEmotionRecords gives the demo patient a couple of weeks of logs
// so the garden and the statistics views have something to show.
func SeedEmotionRecords(patient models.User) {
	var count int64
	database.DB.Model(&models.EmotionRecord{}).Where("user_id = ?", patient.ID).Count(&count)
	if count > 0 {
		log.Println("Demo emotion records already present")
		return
	}

	entries := []struct {
		emotion   string
		intensity int
		note      string
		daysAgo   int
	}{
		{models.EmotionCalm, 3, "Primer registro", 10},
		{models.EmotionHappiness, 4, "Buen dia en el trabajo", 8},
		{models.EmotionSadness, 2, "", 6},
		{models.EmotionHappiness, 5, "Salida con amigas", 3},
		{models.EmotionCalm, 4, "Ejercicio de respiracion", 1},
	}
	for _, e := range entries {
		database.DB.Create(&models.EmotionRecord{
			UserID:    patient.ID,
			Emotion:   e.emotion,
			Intensity: e.intensity,
			Note:      e.note,
			CreatedAt: time.Now().AddDate(0, 0, -e.daysAgo),
		})
	}
	log.Printf("Seeded %d emotion records", len(entries))
}

// SeedTasksAndAppointments gives the demo pair a pending task and an
// upcoming session.
func SeedTasksAndAppointments(patient, psychologist models.User) {
	var tasks int64
	database.DB.Model(&models.Task{}).Where("patient_id = ?", patient.ID).Count(&tasks)
	if tasks == 0 {
		due := time.Now().AddDate(0, 0, 3)
		database.DB.Create(&models.Task{
			PatientID:      patient.ID,
			PsychologistID: psychologist.ID,
			Title:          "Diario de gratitud",
			Description:    "Escribe tres cosas por las que estes agradecida",
			DueDate:        &due,
			CreatedAt:      time.Now(),
		})
		log.Println("Demo task seeded")
	}

	var appts int64
	database.DB.Model(&models.Appointment{}).Where("patient_id = ?", patient.ID).Count(&appts)
	if appts == 0 {
		database.DB.Create(&models.Appointment{
			PatientID:      patient.ID,
			PsychologistID: psychologist.ID,
			ScheduledAt:    time.Now().AddDate(0, 0, 7),
			DurationMin:    60,
			Status:         models.AppointmentScheduled,
			Notes:          "Sesion de seguimiento",
			CreatedAt:      time.Now(),
		})
		log.Println("Demo appointment seeded")
	}
}
