package utils

import (
	stderrors "errors"

	domainerr "kolo/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"error": message})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, fiber.Map{"error": message})
}

// Forbidden sends a JSON error response with status 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusForbidden, fiber.Map{"error": message})
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusNotFound, fiber.Map{"error": message})
}

// Conflict sends a JSON error response with status 409.
func Conflict(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusConflict, fiber.Map{"error": message})
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusInternalServerError, fiber.Map{"error": message})
}

// DomainErrorResponse maps a domain error kind to the matching HTTP status
// and surfaces its message and code to the caller.
func DomainErrorResponse(c *fiber.Ctx, err error) error {
	var derr *domainerr.DomainError
	if !stderrors.As(err, &derr) {
		return InternalError(c, "internal server error")
	}

	status := fiber.StatusBadRequest
	switch derr.Code {
	case domainerr.CodeUnauthorized:
		status = fiber.StatusUnauthorized
	case domainerr.CodeNotFound:
		status = fiber.StatusNotFound
	case domainerr.CodeInvalidState:
		status = fiber.StatusConflict
	case domainerr.CodePersistenceConflict:
		status = fiber.StatusConflict
	}
	return Respond(c, status, fiber.Map{"error": derr.Message, "code": derr.Code})
}
