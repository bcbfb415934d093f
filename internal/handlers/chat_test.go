package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/chat"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/config"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/database"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/Kevin-Teran/miaubloom-sub001/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB points database.DB at an in-memory SQLite DB. Tests use
// unique ids so they stay independent on the shared cache.
func SetupTestDB() {
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Message{},
		&models.EmotionRecord{},
		&models.Task{},
		&models.Appointment{},
	)

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{JWTSecret: "test-secret"}
	}
	logger.Init("test")
}

func testPair(t *testing.T) (patient, psychologist models.User, conv models.Conversation) {
	t.Helper()
	suffix := uuid.New().String()[:8]

	patient = models.User{Name: "Paciente", Email: "p-" + suffix + "@test.dev", Role: models.RolePatient}
	psychologist = models.User{Name: "Psicologa", Email: "s-" + suffix + "@test.dev", Role: models.RolePsychologist}
	assert.NoError(t, database.DB.Create(&patient).Error)
	assert.NoError(t, database.DB.Create(&psychologist).Error)
	patient.PsychologistID = &psychologist.ID
	assert.NoError(t, database.DB.Save(&patient).Error)

	store := chat.NewStore(database.DB)
	var err error
	conv, err = store.EnsureConversation(context.Background(), patient.ID, psychologist.ID)
	assert.NoError(t, err)
	return
}

func authedContext(w *httptest.ResponseRecorder, user models.User) (*gin.Context, *gin.Engine) {
	c, r := gin.CreateTestContext(w)
	c.Set("userId", user.ID)
	c.Set("role", string(user.Role))
	return c, r
}

func TestGetConversations_ReturnsSummaries(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	patient, psychologist, conv := testPair(t)

	store := chat.NewStore(database.DB)
	_, err := store.CreateMessage(context.Background(), conv.ID, patient.ID, "", "Hola")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, psychologist)
	c.Request, _ = http.NewRequest("GET", "/api/chat/conversations", nil)

	GetConversations(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Conversations []chat.ConversationSummary `json:"conversations"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Conversations, 1)
	assert.Equal(t, conv.ID, response.Conversations[0].Conversation.ID)
	assert.Equal(t, int64(1), response.Conversations[0].UnreadCount)
}

func TestGetMessages_ForbiddenForOutsiders(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	_, _, conv := testPair(t)
	outsider, _, _ := testPair(t)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, outsider)
	c.Request, _ = http.NewRequest("GET", "/api/chat/conversations/"+conv.ID+"/messages", nil)
	c.Params = gin.Params{{Key: "conversationId", Value: conv.ID}}

	GetMessages(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSendMessage_PersistsAndReturnsServerID(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	patient, _, conv := testPair(t)

	body, _ := json.Marshal(map[string]string{
		"conversationId": conv.ID,
		"contenido":      "Hola",
	})

	w := httptest.NewRecorder()
	c, _ := authedContext(w, patient)
	c.Request, _ = http.NewRequest("POST", "/api/chat/messages", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	SendMessage(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Mensaje models.Message `json:"mensaje"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Mensaje.ID)
	assert.Equal(t, "Hola", response.Mensaje.Content)
	assert.False(t, response.Mensaje.Read)
}

func TestSendMessage_UnknownConversationIs404(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	patient, _, _ := testPair(t)

	body, _ := json.Marshal(map[string]string{
		"conversationId": "missing",
		"contenido":      "Hola",
	})

	w := httptest.NewRecorder()
	c, _ := authedContext(w, patient)
	c.Request, _ = http.NewRequest("POST", "/api/chat/messages", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	SendMessage(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkConversationReadAndUnreadCount(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	patient, psychologist, conv := testPair(t)

	store := chat.NewStore(database.DB)
	for _, body := range []string{"uno", "dos"} {
		_, err := store.CreateMessage(context.Background(), conv.ID, patient.ID, "", body)
		assert.NoError(t, err)
	}

	// Psychologist starts with two unread.
	w := httptest.NewRecorder()
	c, _ := authedContext(w, psychologist)
	c.Request, _ = http.NewRequest("GET", "/api/chat/unread-count", nil)
	GetUnreadCount(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unreadCount": 2}`, w.Body.String())

	// Viewing the conversation marks them read.
	w = httptest.NewRecorder()
	c, _ = authedContext(w, psychologist)
	c.Request, _ = http.NewRequest("POST", "/api/chat/conversations/"+conv.ID+"/read", nil)
	c.Params = gin.Params{{Key: "conversationId", Value: conv.ID}}
	MarkConversationRead(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"markedRead": 2}`, w.Body.String())

	// Count drops to zero; the patient's own sent messages never count.
	w = httptest.NewRecorder()
	c, _ = authedContext(w, psychologist)
	c.Request, _ = http.NewRequest("GET", "/api/chat/unread-count", nil)
	GetUnreadCount(c)
	assert.JSONEq(t, `{"unreadCount": 0}`, w.Body.String())
}
