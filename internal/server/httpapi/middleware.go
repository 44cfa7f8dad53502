package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	localsEmailKey  = "authEmail"
	localsUserIDKey = "authUserID"
)

// requireAuth extracts the bearer token, validates it as an ACCESS token
// against its own subject, and stashes the authenticated identity in the
// request locals. Any failure is a plain 401; no detail is leaked.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return respondError(c, fiber.StatusUnauthorized, "missing or malformed token")
	}

	email, err := s.tokens.ExtractEmail(tokenString)
	if err != nil || !s.tokens.IsAccessTokenValid(tokenString, email) {
		return respondError(c, fiber.StatusUnauthorized, "invalid token")
	}

	userID, err := s.tokens.ExtractUserID(tokenString)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "invalid token")
	}

	c.Locals(localsEmailKey, email)
	c.Locals(localsUserIDKey, userID)

	return c.Next()
}

func authedEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(localsEmailKey).(string)
	return email
}

func authedUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(localsUserIDKey).(int64)
	return id
}
