// Package guard decides whether a request path may be served for a given
// session. It is a pure function of (path, session); enforcement and
// redirects are the transport layer's job.
package guard

import (
	"strings"

	"go-storefront-kv/internal/model"
)

// Decision tells the caller whether to proceed and, on denial, where to send
// the client.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

const adminPrefix = "/api/v1/admin"

var protectedPrefixes = []string{
	adminPrefix,
	"/api/v1/auth/logout",
	"/api/v1/auth/me",
	"/api/v1/cart",
	"/api/v1/checkout",
	"/api/v1/orders",
}

// Check gates path against the session. Protected paths require a session
// (denied callers go to the login view); the admin subtree additionally
// requires the admin role (denied callers go home).
func Check(path string, session *model.User) Decision {
	if strings.HasPrefix(path, adminPrefix) {
		if session == nil {
			return Decision{RedirectTo: "/login"}
		}
		if !session.IsAdmin() {
			return Decision{RedirectTo: "/"}
		}
		return Decision{Allowed: true}
	}

	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			if session == nil {
				return Decision{RedirectTo: "/login"}
			}
			break
		}
	}
	return Decision{Allowed: true}
}
