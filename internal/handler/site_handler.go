package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-storefront-kv/internal/service"
)

type SiteHandler struct {
	service service.SiteService
}

func NewSiteHandler(s service.SiteService) *SiteHandler {
	return &SiteHandler{service: s}
}

// GetStats returns front-page counters
// GET /api/v1/site/stats
func (h *SiteHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stats)
}

// RecordVisit bumps the visit counter
// POST /api/v1/site/visits
func (h *SiteHandler) RecordVisit(c *fiber.Ctx) error {
	visits, err := h.service.RecordVisit()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record visit"})
	}
	return c.JSON(fiber.Map{"visits": visits})
}

// CookieConsentRequest represents the consent body
type CookieConsentRequest struct {
	Accepted bool `json:"accepted"`
}

// GetCookieConsent returns the stored consent flag ("" when unanswered)
// GET /api/v1/site/cookie-consent
func (h *SiteHandler) GetCookieConsent(c *fiber.Ctx) error {
	flag, err := h.service.CookieConsent()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"cookiesAccepted": flag})
}

// SetCookieConsent stores the banner answer
// PUT /api/v1/site/cookie-consent
func (h *SiteHandler) SetCookieConsent(c *fiber.Ctx) error {
	var req CookieConsentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.SetCookieConsent(req.Accepted); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to store consent"})
	}
	return c.JSON(fiber.Map{"message": "Consent stored"})
}
