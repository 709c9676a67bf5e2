// Package message deletes contact messages from the admin panel.
package message

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/web/handler"
	authmiddleware "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/session"
)

// DeletePath deletes the message named by :id.
const DeletePath = handler.RootPath + "delete_message/:id"

// Service is the message handler service.
type Service struct {
	content *content.Service
}

// Handler is the message handler.
var Handler = Service{}

// Init initializes the message handler.
func (s *Service) Init(app *fiber.App, svc *content.Service, sessions *session.Manager) {
	if app == nil || svc == nil || sessions == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.content = svc

	app.Get(DeletePath, authmiddleware.RequireLogin(sessions), s.Delete)
}

// Delete removes a message.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := s.content.DeleteMessage(c.UserContext(), c.Params("id")); err != nil {
		return err
	}

	return c.Redirect(handler.AdminPath)
}
