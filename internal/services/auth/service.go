// Package auth is the identity collaborator: it registers accounts, checks
// credentials and issues the JWTs that carry ownerId and role claims into
// the wallet core.
package auth

import (
	"errors"

	"kolo/internal/models"
	"kolo/internal/repositories"
	"kolo/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

// RegisterInput holds the fields needed to create an account. Role is one
// of client, supplier or marketer; admins are seeded out of band.
type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Role     string
}

type Service interface {
	Register(input RegisterInput) (*models.User, error)
	Login(phone, password string) (*models.User, string, error)
	GetUserByID(id uint) (*models.User, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) Register(input RegisterInput) (*models.User, error) {
	switch input.Role {
	case models.RoleClient, models.RoleSupplier, models.RoleMarketer:
	case "":
		input.Role = models.RoleClient
	default:
		return nil, ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Password: string(hashed),
		Role:     input.Role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")
	return user, nil
}

func (s *service) Login(phone, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByPhone(phone)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
