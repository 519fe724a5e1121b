package handlers

import (
	"strconv"

	"kolo/internal/middleware"
	"kolo/internal/repositories"
	"kolo/internal/services/review"
	"kolo/internal/services/wallet"
	"kolo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes the admin work queue and the validate/reject
// settlement endpoints.
type AdminHandler struct {
	walletService wallet.Service
	reviewService review.Service
}

func NewAdminHandler(walletService wallet.Service, reviewService review.Service) *AdminHandler {
	return &AdminHandler{
		walletService: walletService,
		reviewService: reviewService,
	}
}

// ListPending is the admin work queue: all pending transactions, newest
// first, optionally filtered by type.
func (h *AdminHandler) ListPending(c *fiber.Ctx) error {
	txs, err := h.walletService.ListPending(c.Context(), c.Query("type"))
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.Success(c, fiber.Map{"transactions": txs})
}

// ListTransactions is the general admin review surface.
func (h *AdminHandler) ListTransactions(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 1, 20)

	var userID uint
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return utils.BadRequest(c, "invalid user_id")
		}
		userID = uint(parsed)
	}

	txs, total, err := h.walletService.ListTransactions(c.Context(), repositories.TransactionFilter{
		UserID: userID,
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(txs, p))
}

func (h *AdminHandler) Validate(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	txID, err := parseTransactionID(c)
	if err != nil {
		return utils.BadRequest(c, "invalid transaction id")
	}

	var input struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := h.reviewService.Validate(c.Context(), txID, claims.UserID, input.Notes)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "transaction validated",
		"transaction": txn,
	})
}

func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	txID, err := parseTransactionID(c)
	if err != nil {
		return utils.BadRequest(c, "invalid transaction id")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := h.reviewService.Reject(c.Context(), txID, claims.UserID, input.Reason)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "transaction rejected",
		"transaction": txn,
	})
}

func parseTransactionID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
