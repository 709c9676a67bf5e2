// Package dashboard renders the admin overview.
package dashboard

import (
	"context"

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
	// Path is the path to the dashboard.
	Path = handler.AdminPath

	// TemplateName is the name of the dashboard template.
	TemplateName = "admin/dashboard"
)

// Service is the dashboard handler service.
type Service struct {
	cfg     *config.Config
	content *content.Service
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *content.Service, sessions *session.Manager) {
	if app == nil || cfg == nil || svc == nil || sessions == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.content = svc

	app.Get(Path, authmiddleware.RequireLogin(sessions), s.Get)
}

// Get renders the dashboard.
func (s *Service) Get(c *fiber.Ctx) error {
	data, err := Data(c.UserContext(), s.cfg, s.content)
	if err != nil {
		return err
	}

	return c.Render(TemplateName, data, handler.BaseLayout)
}

// Data collects everything the dashboard template shows.
func Data(ctx context.Context, cfg *config.Config, svc *content.Service) (fiber.Map, error) {
	projects, err := svc.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	messages, err := svc.ListMessages(ctx)
	if err != nil {
		return nil, err
	}

	skills, err := svc.ListSkills(ctx)
	if err != nil {
		return nil, err
	}

	media, err := svc.SiteMedia(ctx)
	if err != nil {
		return nil, err
	}

	return fiber.Map{
		"Title":      cfg.Title,
		"Projects":   projects,
		"Messages":   messages,
		"Skills":     skills,
		"Media":      media,
		"Navigation": navigation.Admin("Dashboard", "dashboard", Path),
	}, nil
}
