package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/session"
)

// LocalsLoggedIn is the fiber.Locals key holding the authenticated flag.
const LocalsLoggedIn = "LoggedIn"

// Identify records in fiber.Locals whether the request carries an authenticated session.
func Identify(m *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalsLoggedIn, loggedIn(c, m))

		return c.Next()
	}
}

// RequireLogin redirects to the login page unless the session is authenticated.
func RequireLogin(m *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, known := c.Locals(LocalsLoggedIn).(bool)
		if !known {
			ok = loggedIn(c, m)
			c.Locals(LocalsLoggedIn, ok)
		}

		if !ok {
			return c.Redirect(handler.LoginPath)
		}

		return c.Next()
	}
}

func loggedIn(c *fiber.Ctx, m *session.Manager) bool {
	data, err := m.Read(c)
	if err != nil {
		log.Warn().Err(err).Msg("unreadable session treated as logged out")
		return false
	}

	return data.Authenticated
}
