package handlers

import (
	"kolo/internal/repositories"
	"kolo/internal/services/auth"
	"kolo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.Name == "" || input.Phone == "" || input.Email == "" || len(input.Password) < 8 {
		return utils.BadRequest(c, "name, phone, email and a password of at least 8 characters are required")
	}

	user, err := h.authService.Register(auth.RegisterInput{
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		switch err {
		case repositories.ErrPhoneTaken, repositories.ErrEmailTaken:
			return utils.Conflict(c, err.Error())
		case auth.ErrInvalidRole:
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "failed to register")
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{"user": user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	user, token, err := h.authService.Login(input.Phone, input.Password)
	if err != nil {
		return utils.Unauthorized(c, "invalid credentials")
	}

	return utils.Success(c, fiber.Map{
		"token": token,
		"user":  user,
	})
}
