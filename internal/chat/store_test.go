package chat

import (
	"context"
	"testing"
	"time"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var ctx = context.Background()

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}))
	return NewStore(db)
}

// newPair creates a patient, a psychologist and their conversation with
// unique ids, so tests sharing the in-memory database stay independent.
func newPair(t *testing.T, s *Store) (patient, psychologist models.User, conv models.Conversation) {
	t.Helper()
	suffix := uuid.New().String()[:8]

	patient = models.User{Name: "Paciente", Email: "p-" + suffix + "@test.dev", Role: models.RolePatient}
	psychologist = models.User{Name: "Psicologa", Email: "s-" + suffix + "@test.dev", Role: models.RolePsychologist}
	assert.NoError(t, s.db.Create(&patient).Error)
	assert.NoError(t, s.db.Create(&psychologist).Error)

	var err error
	conv, err = s.EnsureConversation(ctx, patient.ID, psychologist.ID)
	assert.NoError(t, err)
	return
}

func TestEnsureConversation_OnePerPair(t *testing.T) {
	s := setupStore(t)
	patient, psychologist, conv := newPair(t, s)

	again, err := s.EnsureConversation(ctx, patient.ID, psychologist.ID)
	assert.NoError(t, err)
	assert.Equal(t, conv.ID, again.ID)
}

func TestCreateMessage_PersistsWithDerivedRole(t *testing.T) {
	s := setupStore(t)
	patient, _, conv := newPair(t, s)

	msg, err := s.CreateMessage(ctx, conv.ID, patient.ID, "", "Hola")
	assert.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, models.RolePatient, msg.SenderRole)
	assert.Equal(t, "Hola", msg.Content)
	assert.False(t, msg.Read)
}

func TestCreateMessage_RejectsNonParticipant(t *testing.T) {
	s := setupStore(t)
	_, _, conv := newPair(t, s)

	_, err := s.CreateMessage(ctx, conv.ID, "stranger", "patient", "hi")
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestCreateMessage_RejectsContradictoryRole(t *testing.T) {
	s := setupStore(t)
	patient, _, conv := newPair(t, s)

	_, err := s.CreateMessage(ctx, conv.ID, patient.ID, "psychologist", "hi")
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestCreateMessage_UnknownConversation(t *testing.T) {
	s := setupStore(t)
	newPair(t, s)

	_, err := s.CreateMessage(ctx, "missing", "whoever", "", "hi")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestTouchConversation_BumpsLastActivity(t *testing.T) {
	s := setupStore(t)
	_, _, conv := newPair(t, s)

	before := conv.LastMessageAt
	time.Sleep(10 * time.Millisecond)
	assert.NoError(t, s.TouchConversation(ctx, conv.ID))

	refreshed, err := s.GetConversation(ctx, conv.ID)
	assert.NoError(t, err)
	assert.True(t, refreshed.LastMessageAt.After(before))

	assert.ErrorIs(t, s.TouchConversation(ctx, "missing"), ErrConversationNotFound)
}

func TestMarkMessagesRead_OnlyOtherPartysMessages(t *testing.T) {
	s := setupStore(t)
	patient, psychologist, conv := newPair(t, s)

	// Two from the patient, one from the psychologist.
	_, err := s.CreateMessage(ctx, conv.ID, patient.ID, "", "uno")
	assert.NoError(t, err)
	_, err = s.CreateMessage(ctx, conv.ID, patient.ID, "", "dos")
	assert.NoError(t, err)
	_, err = s.CreateMessage(ctx, conv.ID, psychologist.ID, "", "respuesta")
	assert.NoError(t, err)

	updated, err := s.MarkMessagesRead(ctx, conv.ID, psychologist.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	// The psychologist's own message stays unread for the patient.
	count, err := s.CountUnreadForUser(ctx, patient.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Marking again is a no-op: the transition is one-way.
	updated, err = s.MarkMessagesRead(ctx, conv.ID, psychologist.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestMarkMessagesRead_RejectsOutsiders(t *testing.T) {
	s := setupStore(t)
	_, _, conv := newPair(t, s)

	_, err := s.MarkMessagesRead(ctx, conv.ID, "stranger")
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = s.MarkMessagesRead(ctx, "missing", "whoever")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestCountUnread_DropsByExactlyTheMarkedAmount(t *testing.T) {
	s := setupStore(t)
	patient, psychologist, conv := newPair(t, s)

	for _, body := range []string{"uno", "dos", "tres"} {
		_, err := s.CreateMessage(ctx, conv.ID, patient.ID, "", body)
		assert.NoError(t, err)
	}

	before, err := s.CountUnreadForUser(ctx, psychologist.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), before)

	updated, err := s.MarkMessagesRead(ctx, conv.ID, psychologist.ID)
	assert.NoError(t, err)

	after, err := s.CountUnreadForUser(ctx, psychologist.ID)
	assert.NoError(t, err)
	assert.Equal(t, before-updated, after)
	assert.Equal(t, int64(0), after)
}

func TestCountUnread_IgnoresOwnMessages(t *testing.T) {
	s := setupStore(t)
	patient, _, conv := newPair(t, s)

	_, err := s.CreateMessage(ctx, conv.ID, patient.ID, "", "propio")
	assert.NoError(t, err)

	count, err := s.CountUnreadForUser(ctx, patient.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestListConversations_SummariesWithUnread(t *testing.T) {
	s := setupStore(t)
	patient, psychologist, conv := newPair(t, s)

	_, err := s.CreateMessage(ctx, conv.ID, patient.ID, "", "Hola")
	assert.NoError(t, err)
	last, err := s.CreateMessage(ctx, conv.ID, patient.ID, "", "Sigues ahi?")
	assert.NoError(t, err)

	summaries, err := s.ListConversations(ctx, psychologist.ID)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, conv.ID, summaries[0].Conversation.ID)
	assert.Equal(t, patient.ID, summaries[0].Partner.ID)
	assert.Equal(t, int64(2), summaries[0].UnreadCount)
	if assert.NotNil(t, summaries[0].LastMessage) {
		assert.Equal(t, last.ID, summaries[0].LastMessage.ID)
	}
}

func TestListMessages_ParticipantOnly(t *testing.T) {
	s := setupStore(t)
	patient, psychologist, conv := newPair(t, s)

	_, err := s.CreateMessage(ctx, conv.ID, patient.ID, "", "Hola")
	assert.NoError(t, err)
	_, err = s.CreateMessage(ctx, conv.ID, psychologist.ID, "", "Hola Mariana")
	assert.NoError(t, err)

	messages, err := s.ListMessages(ctx, conv.ID, patient.ID)
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, "Hola", messages[0].Content)

	_, err = s.ListMessages(ctx, conv.ID, "stranger")
	assert.ErrorIs(t, err, ErrNotParticipant)
}
