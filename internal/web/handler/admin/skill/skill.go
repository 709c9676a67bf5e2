// Package skill adds and deletes skills.
package skill

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/web/handler"
	authmiddleware "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// AddPath receives the add-skill form.
	AddPath = handler.RootPath + "add_skill"

	// DeletePath deletes the skill named by :id.
	DeletePath = handler.RootPath + "delete_skill/:id"
)

// Form is the add-skill form.
type Form struct {
	Name string `form:"skill_name"`
	Icon string `form:"icon_class"`
}

// Service is the skill handler service.
type Service struct {
	content *content.Service
}

// Handler is the skill handler.
var Handler = Service{}

// Init initializes the skill handler.
func (s *Service) Init(app *fiber.App, svc *content.Service, sessions *session.Manager) {
	if app == nil || svc == nil || sessions == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.content = svc

	guard := authmiddleware.RequireLogin(sessions)

	app.Post(AddPath, guard, s.Post)
	app.Get(DeletePath, guard, s.Delete)
}

// Post stores a skill.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form data")
	}

	if _, err := s.content.AddSkill(c.UserContext(), form.Name, form.Icon); err != nil {
		return err
	}

	return c.Redirect(handler.AdminPath)
}

// Delete removes a skill.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := s.content.DeleteSkill(c.UserContext(), c.Params("id")); err != nil {
		return err
	}

	return c.Redirect(handler.AdminPath)
}
