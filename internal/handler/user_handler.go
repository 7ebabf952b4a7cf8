package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/repository"
)

type UserHandler struct {
	identity repository.IdentityRepository
}

func NewUserHandler(identity repository.IdentityRepository) *UserHandler {
	return &UserHandler{identity: identity}
}

// GetUsers lists every registered account, without digests
// GET /api/v1/admin/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.identity.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	responses := make([]model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return c.JSON(responses)
}
