package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"go-storefront-kv/internal/service"
)

type CartHandler struct {
	service service.CartService
}

func NewCartHandler(s service.CartService) *CartHandler {
	return &CartHandler{service: s}
}

// AddToCartRequest represents the add-to-cart body
type AddToCartRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// GetCart returns the cart joined against the catalog
// GET /api/v1/cart
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	views, err := h.service.View()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(views)
}

// AddToCart puts a product in the cart, accumulating quantity
// POST /api/v1/cart
func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	added, err := h.service.Add(req.ProductID, req.Quantity)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add to cart"})
	}
	if !added {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Added to cart"})
}

// RemoveFromCart drops one line
// DELETE /api/v1/cart/:productId
func (h *CartHandler) RemoveFromCart(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.Remove(productID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove from cart"})
	}
	return c.JSON(fiber.Map{"message": "Removed from cart"})
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to clear cart"})
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
