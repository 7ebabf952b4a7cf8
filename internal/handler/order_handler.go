package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-storefront-kv/internal/service"
)

type OrderHandler struct {
	service service.CheckoutService
}

func NewOrderHandler(s service.CheckoutService) *OrderHandler {
	return &OrderHandler{service: s}
}

// Checkout converts the cart into an order
// POST /api/v1/checkout
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	order, err := h.service.Checkout()
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession):
			return c.Status(401).JSON(fiber.Map{"error": err.Error(), "redirect": "/login"})
		case errors.Is(err, service.ErrEmptyCart):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Checkout failed"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Order placed", "data": order})
}

// GetOrders lists the session user's orders
// GET /api/v1/orders
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListForCurrentUser()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}
