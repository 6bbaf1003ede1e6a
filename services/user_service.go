package services

import (
	"errors"

	"dueday/dueday/database"
	"dueday/dueday/models"

	"gorm.io/gorm"
)

// UserServiceInterface is the thin persistence contract the session authority
// needs. Email uniqueness is enforced by the store's unique constraint, not by
// a lookup before the insert, so two concurrent registrations with the same
// email cannot both succeed.
type UserServiceInterface interface {
	CreateUser(db *database.Database, user models.User) (models.User, error)
	GetUserByEmail(db *database.Database, email string) (models.User, error)
	GetUserById(db *database.Database, id string) (models.User, error)
	SetSessionToken(db *database.Database, id string, sessionToken string) error
}

type UserService struct{}

func (s *UserService) CreateUser(db *database.Database, user models.User) (models.User, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	event, err := models.NewEvent("user.created", "user", map[string]interface{}{
		"user_id": user.ID.String(),
		"email":   user.Email,
	})
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	return user, nil
}

func (s *UserService) GetUserByEmail(db *database.Database, email string) (models.User, error) {
	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) GetUserById(db *database.Database, id string) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) SetSessionToken(db *database.Database, id string, sessionToken string) error {
	result := db.DB.Model(&models.User{}).Where("id = ?", id).Update("session_token", sessionToken)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

var UserServiceInstance UserServiceInterface = &UserService{}
