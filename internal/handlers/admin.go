package handlers

import (
	"btcwallet/internal/middleware"
	"btcwallet/internal/services/admin"
	"btcwallet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService admin.Service
	errors       *ErrorFormatter
}

func NewAdminHandler(adminService admin.Service, errors *ErrorFormatter) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		errors:       errors,
	}
}

func (h *AdminHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.adminService.GetStatistics(c.UserContext(), middleware.AdminKey(c))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return utils.Success(c, stats)
}
