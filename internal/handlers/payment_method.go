package handlers

import (
	"kolo/internal/repositories"
	"kolo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// PaymentMethodHandler lists the configured mobile-money channels.
type PaymentMethodHandler struct {
	methods repositories.PaymentMethodRepository
}

func NewPaymentMethodHandler(methods repositories.PaymentMethodRepository) *PaymentMethodHandler {
	return &PaymentMethodHandler{methods: methods}
}

func (h *PaymentMethodHandler) ListEnabled(c *fiber.Ctx) error {
	list, err := h.methods.ListEnabled(c.Context())
	if err != nil {
		return utils.InternalError(c, "failed to list payment methods")
	}
	return utils.Success(c, fiber.Map{"payment_methods": list})
}
