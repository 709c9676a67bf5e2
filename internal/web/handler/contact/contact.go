// Package contact serves the public contact form.
package contact

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/navigation"
)

const (
	// Path is the path to the contact form.
	Path = handler.RootPath + "contact"

	// SendPath receives the form.
	SendPath = handler.RootPath + "send_message"

	// TemplateName is the name of the contact template.
	TemplateName = "contact"
)

// Form is the contact form submission.
type Form struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Message string `form:"message"`
}

// Service is the contact handler service.
type Service struct {
	cfg     *config.Config
	content *content.Service
}

// Handler is the contact handler.
var Handler = Service{}

// Init initializes the contact handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *content.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.content = svc

	app.Get(Path, s.Get)
	app.Post(SendPath, s.Post)
}

// Get renders the contact form.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, false)
}

// Post stores the message. Incomplete messages are dropped and the visitor is
// thanked all the same.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form data")
	}

	if err := s.content.SubmitMessage(c.UserContext(), form.Name, form.Email, form.Message); err != nil {
		return err
	}

	return s.render(c, true)
}

func (s *Service) render(c *fiber.Ctx, sent bool) error {
	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Sent":       sent,
		"Navigation": navigation.NewContext("Contact", navigation.SectionPublic, "contact"),
	}, handler.BaseLayout)
}
