package routes

import (
	"errors"
	"net/http"

	"dueday/dueday/database"
	"dueday/dueday/services"

	"github.com/gin-gonic/gin"
)

// Registration error codes on the wire.
const (
	RegisterErrInvalidEmail = 0
	RegisterErrEmailTaken   = 1
	RegisterErrWeakPassword = 2
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerResponse struct {
	Success   bool   `json:"success"`
	ErrorCode *int   `json:"errorCode,omitempty"`
	Message   string `json:"message,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Success      bool   `json:"success"`
	SessionToken string `json:"sessionToken,omitempty"`
	Message      string `json:"message,omitempty"`
}

type logoutRequest struct {
	SessionToken string `json:"sessionToken"`
}

func RegisterAuthRoutes(router *gin.Engine, db *database.Database, authService services.AuthServiceInterface) {
	router.POST("/register", func(c *gin.Context) { Register(c, db, authService) })
	router.POST("/login", func(c *gin.Context) { Login(c, db, authService) })
	router.POST("/logout", func(c *gin.Context) { Logout(c, db, authService) })
}

func Register(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request registerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, registerResponse{Success: false, Message: err.Error()})
		return
	}

	_, err := authService.Register(db, request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, registerResponse{
				Success: false, ErrorCode: intPtr(RegisterErrInvalidEmail), Message: "Invalid email",
			})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, registerResponse{
				Success: false, ErrorCode: intPtr(RegisterErrEmailTaken), Message: "Email already registered",
			})
		case errors.Is(err, services.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, registerResponse{
				Success: false, ErrorCode: intPtr(RegisterErrWeakPassword),
				Message: "Password needs at least 10 characters, 2 numbers and 2 capital letters",
			})
		default:
			c.JSON(http.StatusInternalServerError, registerResponse{Success: false, Message: err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, registerResponse{Success: true, Message: "Registered"})
}

func Login(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, loginResponse{Success: false, Message: err.Error()})
		return
	}

	sessionToken, err := authService.Login(db, request.Email, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, loginResponse{Success: false, Message: "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, loginResponse{Success: false, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, loginResponse{Success: true, SessionToken: sessionToken})
}

func Logout(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request logoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := authService.Logout(db, request.SessionToken); err != nil {
		if errors.Is(err, services.ErrInvalidSession) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "sessionInvalid": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func intPtr(v int) *int {
	return &v
}
