// Package logout ends the admin session.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/session"
)

// Path is the path to the logout route.
const Path = handler.RootPath + "logout"

// Service is the logout handler service.
type Service struct {
	sessions *session.Manager
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, sessions *session.Manager) {
	if app == nil || sessions == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.sessions = sessions

	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)
}

// Logout clears the session and returns to the home page.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := s.sessions.Logout(c); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	return c.Redirect(handler.RootPath)
}
