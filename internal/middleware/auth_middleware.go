package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-storefront-kv/internal/guard"
	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/repository"
	"go-storefront-kv/pkg/token"
)

const userKey = "session_user"

// Guarded resolves the bearer session and applies the access rules for the
// request path. The resolved user is stored in locals for handlers.
func Guarded(identity repository.IdentityRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := resolveSession(c, identity)

		if d := guard.Check(c.Path(), session); !d.Allowed {
			status := fiber.StatusUnauthorized
			if session != nil {
				status = fiber.StatusForbidden
			}
			return c.Status(status).JSON(fiber.Map{
				"error":    "access denied",
				"redirect": d.RedirectTo,
			})
		}

		if session != nil {
			c.Locals(userKey, session)
		}
		return c.Next()
	}
}

// CurrentUser returns the session user set by Guarded, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(userKey).(*model.User)
	return user
}

// resolveSession validates the bearer token and cross-checks it against the
// stored session pointer. A token from an earlier login carries a stale
// session version and resolves to nil.
func resolveSession(c *fiber.Ctx, identity repository.IdentityRepository) *model.User {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}

	claims, err := token.Validate(parts[1])
	if err != nil {
		return nil
	}

	session, err := identity.CurrentSession()
	if err != nil || session == nil {
		return nil
	}
	if session.ID != claims.UserID || session.SessionVersion != claims.SessionVersion {
		return nil
	}
	return session
}
