package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kevin-Teran/miaubloom-sub001/internal/config"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/database"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/models"
	"github.com/Kevin-Teran/miaubloom-sub001/internal/routes"
	"github.com/Kevin-Teran/miaubloom-sub001/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{JWTSecret: "test_secret_key_12345"}
	logger.Init("test")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Message{},
		&models.EmotionRecord{},
		&models.Task{},
		&models.Appointment{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	// Handlers read the global connection.
	database.DB = db
	return db
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")
	routes.RegisterAuthRoutes(api.Group("/auth"))
	routes.RegisterUserRoutes(api)
	routes.RegisterChatRoutes(api)
	routes.RegisterEmotionRoutes(api)
	routes.RegisterTaskRoutes(api)
	routes.RegisterAppointmentRoutes(api)

	return r
}

func performRequest(r *gin.Engine, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser creates an account through the public endpoint and
// returns its token and id. Emails get a unique suffix because the
// shared-cache DB persists across tests in the package.
func registerUser(t *testing.T, r *gin.Engine, name, role string) (token, id, email string) {
	t.Helper()

	email = name + "-" + uuid.New().String()[:8] + "@test.dev"
	w := performRequest(r, "POST", "/api/auth/register", map[string]string{
		"nombre":   name,
		"email":    email,
		"password": "MiauBloom1",
		"rol":      role,
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s failed: %d %s", role, w.Code, w.Body.String())
	}

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("register response: %v", err)
	}
	return resp.Token, resp.User.ID, email
}
