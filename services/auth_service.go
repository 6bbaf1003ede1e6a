package services

import (
	"crypto/subtle"
	"errors"
	"time"

	"dueday/dueday/database"
	"dueday/dueday/models"
	"dueday/dueday/utils/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceInterface interface {
	Register(db *database.Database, email, password string) (models.User, error)
	Login(db *database.Database, email, password string) (string, error)
	Validate(db *database.Database, sessionToken string) (uuid.UUID, error)
	Logout(db *database.Database, sessionToken string) error
}

// AuthService is the session authority. A session token is a signed claim on a
// user id, but it only validates while it equals the token stored on the user
// row, so each login revokes the one before it.
type AuthService struct {
	userService UserServiceInterface
	tokenSecret []byte
	tokenExpiry time.Duration
}

func NewAuthService(userService UserServiceInterface, tokenSecret string, tokenExpirationHours int) *AuthService {
	return &AuthService{
		userService: userService,
		tokenSecret: []byte(tokenSecret),
		tokenExpiry: time.Duration(tokenExpirationHours) * time.Hour,
	}
}

// Register creates a user from a validated email/password pair. No session is
// issued; login is a separate step.
func (s *AuthService) Register(db *database.Database, email, password string) (models.User, error) {
	if !ValidateEmail(email) {
		return models.User{}, ErrInvalidEmail
	}
	if !ValidatePasswordStrength(password) {
		return models.User{}, ErrWeakPassword
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
	}

	return s.userService.CreateUser(db, user)
}

// Login checks credentials and issues a fresh session token, overwriting any
// prior token for the user. Lookup and password failures are reported
// identically so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) Login(db *database.Database, email, password string) (string, error) {
	user, err := s.userService.GetUserByEmail(db, email)
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := s.comparePasswords(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	sessionToken, err := token.GenerateToken(user.ID, user.Email, s.tokenSecret, s.tokenExpiry)
	if err != nil {
		return "", err
	}

	if err := s.userService.SetSessionToken(db, user.ID.String(), sessionToken); err != nil {
		return "", err
	}

	return sessionToken, nil
}

// Validate resolves a session token to the owning user id. It fails when the
// token is empty, malformed, expired, or no longer the user's current token.
func (s *AuthService) Validate(db *database.Database, sessionToken string) (uuid.UUID, error) {
	if sessionToken == "" {
		return uuid.Nil, ErrInvalidSession
	}

	claims, err := token.ValidateToken(sessionToken, s.tokenSecret)
	if err != nil {
		return uuid.Nil, ErrInvalidSession
	}

	user, err := s.userService.GetUserById(db, claims.UserID.String())
	if err != nil {
		return uuid.Nil, ErrInvalidSession
	}

	if subtle.ConstantTimeCompare([]byte(user.SessionToken), []byte(sessionToken)) != 1 {
		return uuid.Nil, ErrInvalidSession
	}

	return user.ID, nil
}

// Logout clears the stored session token for the token's owner.
func (s *AuthService) Logout(db *database.Database, sessionToken string) error {
	userID, err := s.Validate(db, sessionToken)
	if err != nil {
		return err
	}
	return s.userService.SetSessionToken(db, userID.String(), "")
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var AuthServiceInstance AuthServiceInterface
