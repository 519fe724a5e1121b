package handlers

import (
	"kolo/internal/middleware"
	"kolo/internal/services/pin"
	"kolo/internal/services/wallet"
	"kolo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// WalletHandler exposes the owner-facing wallet endpoints.
type WalletHandler struct {
	walletService wallet.Service
	pinService    pin.Service
}

func NewWalletHandler(walletService wallet.Service, pinService pin.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		pinService:    pinService,
	}
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{
		"wallet":  w,
		"has_pin": w.HasPIN(),
	})
}

func (h *WalletHandler) SetPIN(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		PIN string `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	if err := h.pinService.Set(c.Context(), claims.UserID, input.PIN); err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{"message": "PIN updated"})
}

func (h *WalletHandler) RequestDeposit(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount      int64  `json:"amount"`
		Provider    string `json:"provider"`
		PhoneNumber string `json:"phone_number"`
		ProofCode   string `json:"proof_code"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := h.walletService.RequestDeposit(c.Context(), wallet.DepositRequest{
		UserID:      claims.UserID,
		Amount:      input.Amount,
		Provider:    input.Provider,
		PhoneNumber: input.PhoneNumber,
		ProofCode:   input.ProofCode,
	})
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"message":     "deposit request submitted, awaiting validation",
		"transaction": txn,
	})
}

func (h *WalletHandler) RequestWithdrawal(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount      int64  `json:"amount"`
		Provider    string `json:"provider"`
		PhoneNumber string `json:"phone_number"`
		PIN         string `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := h.walletService.RequestWithdrawal(c.Context(), wallet.WithdrawalRequest{
		UserID:      claims.UserID,
		Amount:      input.Amount,
		Provider:    input.Provider,
		PhoneNumber: input.PhoneNumber,
		PIN:         input.PIN,
	})
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"message":     "withdrawal request submitted, awaiting validation",
		"transaction": txn,
		"new_balance": w.Balance,
	})
}

func (h *WalletHandler) Pay(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount      int64  `json:"amount"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := h.walletService.Pay(c.Context(), wallet.PaymentRequest{
		UserID:      claims.UserID,
		Amount:      input.Amount,
		Description: input.Description,
	})
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"message":     "payment completed",
		"transaction": txn,
	})
}
