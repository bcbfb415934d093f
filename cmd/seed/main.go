// Seeds a demo psychologist, a linked patient, their conversation and a
// few emotion records, tasks and appointments for local development.
package main

import (
	"log"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/config"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/database"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/migrations"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/seeds"
	"github.com/Kevin-Teran/miaubloom-sub001/pkg/logger"
)

func main() {
	config.LoadConfig()
	logger.Init("development")
	database.Connect()

	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Message{},
		&models.EmotionRecord{},
		&models.Task{},
		&models.Appointment{},
	); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	if err := migrations.NewMigrator(database.DB).Run(); err != nil {
		log.Fatalf("versioned migrations failed: %v", err)
	}

	psychologist, err := seeds.GetOrCreateDemoPsychologist()
	if err != nil {
		log.Fatalf("seed psychologist: %v", err)
	}

	patient, err := seeds.GetOrCreateDemoPatient(psychologist)
	if err != nil {
		log.Fatalf("seed patient: %v", err)
	}

	if err := seeds.SeedConversation(patient, psychologist); err != nil {
		log.Fatalf("seed conversation: %v", err)
	}

	seeds.SeedEmotionRecords(patient)
	seeds.SeedTasksAndAppointments(patient, psychologist)

	log.Println("Seed complete")
}
