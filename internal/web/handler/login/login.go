// Package login checks the admin credentials and opens the admin session.
package login

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/navigation"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = handler.LoginPath

	// TemplateName is the name of the login template.
	TemplateName = "login"

	// InvalidCredentials is the body of a rejected login.
	InvalidCredentials = "Invalid credentials"
)

// Form is the login form submission.
type Form struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Service is the login handler service.
type Service struct {
	cfg      *config.Config
	gate     *auth.Gate
	sessions *session.Manager
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, gate *auth.Gate, sessions *session.Manager) {
	if app == nil || cfg == nil || gate == nil || sessions == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.gate = gate
	s.sessions = sessions

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})
}

// Get renders the login page, or sends a logged in admin on to the dashboard.
func (s *Service) Get(c *fiber.Ctx) error {
	if data, err := s.sessions.Read(c); err == nil && data.Authenticated {
		return c.Redirect(handler.AdminPath)
	}

	return s.render(c, "")
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form data")
	}

	if !s.gate.Verify(form.Username, form.Password) {
		log.Warn().Str("ip", c.IP()).Msg("failed admin login")

		c.Status(fiber.StatusUnauthorized)

		return s.render(c, InvalidCredentials)
	}

	if err := s.sessions.Login(c); err != nil {
		return err
	}

	log.Info().Str("ip", c.IP()).Msg("admin logged in")

	return c.Redirect(handler.AdminPath)
}

func (s *Service) render(c *fiber.Ctx, errMsg string) error {
	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"error":      errMsg,
		"Navigation": navigation.NewContext("Login", navigation.SectionPublic, "login"),
	}, handler.BaseLayout)
}
