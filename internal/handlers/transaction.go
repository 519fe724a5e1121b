package handlers

import (
	"kolo/internal/middleware"
	"kolo/internal/repositories"
	"kolo/internal/services/wallet"
	"kolo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler exposes the owner-facing transaction history.
type TransactionHandler struct {
	walletService wallet.Service
}

func NewTransactionHandler(walletService wallet.Service) *TransactionHandler {
	return &TransactionHandler{walletService: walletService}
}

func (h *TransactionHandler) ListMine(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	p := utils.GetPagination(c, 1, 20)
	txs, total, err := h.walletService.ListTransactions(c.Context(), repositories.TransactionFilter{
		UserID: claims.UserID,
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
