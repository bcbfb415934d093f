package seeds

import (
	"log"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/database"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/Kevin-Teran/miaubloom-sub001/pkg/utils"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "MiauBloom1"

// GetOrCreateDemoPsychologist returns the demo psychologist account,
// creating it on first run.
func GetOrCreateDemoPsychologist() (models.User, error) {
	email := "valeria@miaubloom.dev"

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err == nil {
		log.Printf("Demo psychologist found: %s", user.Email)
		return user, nil
	}

	hashed, err := utils.HashPassword(DemoPassword)
	if err != nil {
		return models.User{}, err
	}

	user = models.User{
		Name:       "Dra. Valeria Soto",
		Email:      email,
		Password:   hashed,
		Role:       models.RolePsychologist,
		AvatarIcon: "cat-doctor",
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	log.Printf("Demo psychologist created: %s", user.Email)
	return user, nil
}

// GetOrCreateDemoPatient returns the demo patient, linked to the given
// psychologist.
func GetOrCreateDemoPatient(psychologist models.User) (models.User, error) {
	email := "mariana@miaubloom.dev"

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err == nil {
		log.Printf("Demo patient found: %s", user.Email)
		return user, nil
	}

	hashed, err := utils.HashPassword(DemoPassword)
	if err != nil {
		return models.User{}, err
	}

	user = models.User{
		Name:           "Mariana Perez",
		Email:          email,
		Password:       hashed,
		Role:           models.RolePatient,
		AvatarIcon:     "cat-flower",
		Objective:      "Manejar la ansiedad en el trabajo",
		PsychologistID: &psychologist.ID,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	log.Printf("Demo patient created: %s", user.Email)
	return user, nil
}
