package httpapi

import (
	"errors"
	"strings"

	"github.com/campushub/identity/internal/common"
	"github.com/campushub/identity/internal/server/auth"
	"github.com/gofiber/fiber/v2"
)

// Keys under which the gate stores the verified identity for downstream
// handlers.
const (
	localsClaims = "authClaims"
	localsUser   = "authUser"
)

// requireAuth returns the authorization gate as a fiber middleware.
//
// With resolve=false the gate is stateless: it verifies the bearer token and
// attaches its claims snapshot, never touching storage. With resolve=true it
// additionally re-fetches the live account by the email claim, so a handler
// sees current data even if the account changed after the token was issued;
// a valid token whose account no longer resolves is rejected.
func (s *Server) requireAuth(resolve bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return errorJSON(c, fiber.StatusUnauthorized, codeUnauthenticated, "Authentication required")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return errorJSON(c, fiber.StatusUnauthorized, codeUnauthenticated, "Authorization header format must be Bearer {token}")
		}

		claims, err := auth.ParseToken(parts[1], s.jwtSecret)
		if err != nil {
			return errorJSON(c, fiber.StatusUnauthorized, codeInvalidToken, "Invalid or expired token")
		}

		if resolve {
			user, err := s.users.UserByEmail(c.UserContext(), claims.Email)
			if err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					return errorJSON(c, fiber.StatusUnauthorized, codeUnauthenticated, "User not found, not authorized")
				}
				return s.fail(c, err)
			}
			c.Locals(localsUser, user)
		}

		c.Locals(localsClaims, claims)

		return c.Next()
	}
}
