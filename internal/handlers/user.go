package handlers

import (
	"btcwallet/internal/services/user"
	"btcwallet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
	errors      *ErrorFormatter
}

func NewUserHandler(userService user.Service, errors *ErrorFormatter) *UserHandler {
	return &UserHandler{
		userService: userService,
		errors:      errors,
	}
}

// CreateUser registers a user and hands back its only credential.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	u, err := h.userService.CreateUser(c.UserContext())
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return utils.Created(c, fiber.Map{"api_key": u.APIKey})
}
