package seeds

import (
	"context"
	"log"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/chat"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/database"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
)

// SeedConversation ensures the demo pair's conversation exists and has
// a welcome message from the psychologist.
func SeedConversation(patient, psychologist models.User) error {
	store := chat.NewStore(database.DB)
	ctx := context.Background()

	conv, err := store.EnsureConversation(ctx, patient.ID, psychologist.ID)
	if err != nil {
		return err
	}

	messages, err := store.ListMessages(ctx, conv.ID, psychologist.ID)
	if err != nil {
		return err
	}
	if len(messages) > 0 {
		log.Println("Demo conversation already has messages")
		return nil
	}

	if _, err := store.CreateMessage(ctx, conv.ID, psychologist.ID, "", "Hola Mariana, bienvenida a MiauBloom. Este es nuestro canal para hablar entre sesiones."); err != nil {
		return err
	}
	if err := store.TouchConversation(ctx, conv.ID); err != nil {
		return err
	}

	log.Println("Demo conversation seeded")
	return nil
}
