// Package project adds and deletes showcase projects.
package project

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/web/handler"
	authmiddleware "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/navigation"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// AddPath is the path of the add-project form.
	AddPath = handler.RootPath + "add"

	// DeletePath deletes the project named by :id.
	DeletePath = handler.RootPath + "delete/:id"

	// TemplateName is the name of the add-project template.
	TemplateName = "admin/add_project"
)

// Service is the project handler service.
type Service struct {
	cfg     *config.Config
	content *content.Service
}

// Handler is the project handler.
var Handler = Service{}

// Init initializes the project handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *content.Service, sessions *session.Manager) {
	if app == nil || cfg == nil || svc == nil || sessions == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.content = svc

	guard := authmiddleware.RequireLogin(sessions)

	app.Get(AddPath, guard, s.Get)
	app.Post(AddPath, guard, s.Post)
	app.Get(DeletePath, guard, s.Delete)
}

// Get renders the add-project form.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": navigation.Admin("Add Project", "add_project", AddPath),
	}, handler.BaseLayout)
}

// Post uploads the image and stores the project.
func (s *Service) Post(c *fiber.Ctx) error {
	image, closeImage, err := handler.FormFile(c, "image")
	if err != nil {
		return err
	}
	defer closeImage()

	if _, err = s.content.AddProject(c.UserContext(), c.FormValue("title"), c.FormValue("description"), image); err != nil {
		return err
	}

	return c.Redirect(handler.AdminPath)
}

// Delete removes the project and its image.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := s.content.DeleteProject(c.UserContext(), c.Params("id")); err != nil {
		return err
	}

	return c.Redirect(handler.AdminPath)
}
