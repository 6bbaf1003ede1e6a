package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dueday/dueday/database"
	"dueday/dueday/models"
	"dueday/dueday/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type MockAuthService struct{}

const validToken = "valid-session-token"

var mockOwnerID = uuid.Must(uuid.Parse("90a12345-f12a-98c4-a456-513432930000"))

func (m *MockAuthService) Register(db *database.Database, email, password string) (models.User, error) {
	switch {
	case !services.ValidateEmail(email):
		return models.User{}, services.ErrInvalidEmail
	case email == "taken@example.com":
		return models.User{}, services.ErrEmailTaken
	case !services.ValidatePasswordStrength(password):
		return models.User{}, services.ErrWeakPassword
	}
	return models.User{ID: uuid.New(), Email: email}, nil
}

func (m *MockAuthService) Login(db *database.Database, email, password string) (string, error) {
	if email == "user@example.com" && password == "SuperSafe12" {
		return validToken, nil
	}
	return "", services.ErrInvalidCredentials
}

func (m *MockAuthService) Validate(db *database.Database, sessionToken string) (uuid.UUID, error) {
	if sessionToken == validToken {
		return mockOwnerID, nil
	}
	return uuid.Nil, services.ErrInvalidSession
}

func (m *MockAuthService) Logout(db *database.Database, sessionToken string) error {
	if sessionToken != validToken {
		return services.ErrInvalidSession
	}
	return nil
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterAuthRoutes(router, &database.Database{}, &MockAuthService{})
	return router
}

func postJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterRoute_Success(t *testing.T) {
	router := setupAuthRouter()

	w := postJSON(router, http.MethodPost, "/register", gin.H{
		"email": "user@example.com", "password": "SuperSafe12",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp registerResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.ErrorCode)
}

func TestRegisterRoute_ErrorCodes(t *testing.T) {
	router := setupAuthRouter()

	cases := []struct {
		name     string
		email    string
		password string
		status   int
		code     int
	}{
		{"invalid email", "nope", "SuperSafe12", http.StatusBadRequest, RegisterErrInvalidEmail},
		{"email taken", "taken@example.com", "SuperSafe12", http.StatusConflict, RegisterErrEmailTaken},
		{"weak password", "user@example.com", "weak12", http.StatusBadRequest, RegisterErrWeakPassword},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := postJSON(router, http.MethodPost, "/register", gin.H{
				"email": c.email, "password": c.password,
			})

			assert.Equal(t, c.status, w.Code)
			var resp registerResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			if assert.NotNil(t, resp.ErrorCode) {
				assert.Equal(t, c.code, *resp.ErrorCode)
			}
		})
	}
}

func TestLoginRoute_Success(t *testing.T) {
	router := setupAuthRouter()

	w := postJSON(router, http.MethodPost, "/login", gin.H{
		"email": "user@example.com", "password": "SuperSafe12",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp loginResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, validToken, resp.SessionToken)
}

func TestLoginRoute_BadCredentials(t *testing.T) {
	router := setupAuthRouter()

	w := postJSON(router, http.MethodPost, "/login", gin.H{
		"email": "user@example.com", "password": "WrongPass12",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp loginResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Empty(t, resp.SessionToken)
}

func TestLogoutRoute(t *testing.T) {
	router := setupAuthRouter()

	w := postJSON(router, http.MethodPost, "/logout", gin.H{"sessionToken": validToken})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, http.MethodPost, "/logout", gin.H{"sessionToken": "stale"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"sessionInvalid":true`)
}
