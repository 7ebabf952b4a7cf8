package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-storefront-kv/internal/middleware"
	"go-storefront-kv/internal/repository"
	"go-storefront-kv/pkg/token"
	"go-storefront-kv/pkg/validator"
)

type AuthHandler struct {
	identity repository.IdentityRepository
}

func NewAuthHandler(identity repository.IdentityRepository) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// RegisterRequest represents the register request body
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles account creation
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		first := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": "Validation failed: field '" + first.FailedField + "' failed on tag '" + first.Tag + "'",
		})
	}

	user, err := h.identity.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to register"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Account created", "user": user.ToResponse()})
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	user, err := h.identity.Authenticate(req.Email, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := h.identity.Login(user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to start session"})
	}

	t, err := token.Generate(session)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{"token": t, "user": session.ToResponse()})
}

// Logout clears the session pointer
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.identity.Logout(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to log out"})
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the current session user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(user.ToResponse())
}
