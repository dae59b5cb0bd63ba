package handlers

import (
	"btcwallet/internal/middleware"
	"btcwallet/internal/services/wallet"
	"btcwallet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
	errors        *ErrorFormatter
}

func NewWalletHandler(walletService wallet.Service, errors *ErrorFormatter) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		errors:        errors,
	}
}

func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	resp, err := h.walletService.CreateWallet(c.UserContext(), middleware.APIKey(c))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return utils.Created(c, resp)
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	resp, err := h.walletService.GetWallet(c.UserContext(), middleware.APIKey(c), c.Params("address"))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return utils.Success(c, resp)
}
