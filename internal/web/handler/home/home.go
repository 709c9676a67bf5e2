// Package home renders the public showcase.
package home

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/navigation"
)

const (
	// Path is the path to the home page.
	Path = handler.RootPath

	// TemplateName is the name of the home template.
	TemplateName = "index"
)

// Service is the home page handler service.
type Service struct {
	cfg     *config.Config
	content *content.Service
}

// Handler is the home page handler.
var Handler = Service{}

// Init initializes the home handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *content.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.content = svc

	app.Get(Path, s.Get)
}

// Get renders projects, skills and the profile media.
func (s *Service) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projects, err := s.content.ListProjects(ctx)
	if err != nil {
		return err
	}

	skills, err := s.content.ListSkills(ctx)
	if err != nil {
		return err
	}

	media, err := s.content.SiteMedia(ctx)
	if err != nil {
		return err
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Tagline":    s.cfg.Tagline,
		"Projects":   projects,
		"Skills":     skills,
		"Media":      media,
		"Navigation": navigation.NewContext(s.cfg.Title, navigation.SectionPublic, "home"),
	}, handler.BaseLayout)
}
