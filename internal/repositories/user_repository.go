package repositories

import (
	"errors"

	"kolo/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPhoneTaken   = errors.New("phone number already taken")
	ErrEmailTaken   = errors.New("email already taken")
)

// UserRepository supplies owner and admin identities.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
