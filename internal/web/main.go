// Package web assembles the fiber application: templates, middleware and
// every public and admin route.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/content"
	fiberlog "github.com/folio-cms/folio/internal/logger/adapter/fiber"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/handler/admin/configuration"
	"github.com/folio-cms/folio/internal/web/handler/admin/dashboard"
	"github.com/folio-cms/folio/internal/web/handler/admin/message"
	"github.com/folio-cms/folio/internal/web/handler/admin/profile"
	"github.com/folio-cms/folio/internal/web/handler/admin/project"
	"github.com/folio-cms/folio/internal/web/handler/admin/skill"
	"github.com/folio-cms/folio/internal/web/handler/contact"
	"github.com/folio-cms/folio/internal/web/handler/home"
	"github.com/folio-cms/folio/internal/web/handler/login"
	"github.com/folio-cms/folio/internal/web/handler/logout"
	authmiddleware "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// CheckAlivePath answers 200 while the service takes traffic.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"

	megabyte = 1 << 20
)

// Deps are the services the handlers are wired to.
type Deps struct {
	Content  *content.Service
	Gate     *auth.Gate
	Sessions *session.Manager
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address and blocks until it stops.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error, 1)

	s.alive.Store(true)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			doneFiber <- err
			return
		}

		doneFiber <- nil
	}()

	return <-doneFiber // wait for fiber to stop
}

// WaitShutdown blocks until SIGINT or SIGTERM, then drains and stops the server.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive answers 200 until shutdown starts, 503 afterwards.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendStatus(fiber.StatusOK)
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, deps Deps) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if deps.Content == nil || deps.Gate == nil || deps.Sessions == nil {
		panic("web dependencies cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	templateEngine.AddFunc("sub", func(a, b int) int {
		return a - b
	})

	app := fiber.New(
		fiber.Config{
			ReadBufferSize:    8192,
			AppName:           "folio",
			CaseSensitive:     true,
			Prefork:           false,
			Immutable:         true,
			Views:             templateEngine,
			PassLocalsToViews: true,
			BodyLimit:         cfg.Webserver.BodyLimitMB * megabyte,
			ErrorHandler:      handler.ErrorHandler,
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Use(fiberlog.New(fiberlog.Config{
		Log:           cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: cookieKey(cfg.Webserver.SessionSecret),
	}))
	app.Use(authmiddleware.Identify(deps.Sessions))

	home.Handler.Init(app, cfg, deps.Content)
	contact.Handler.Init(app, cfg, deps.Content)
	login.Handler.Init(app, cfg, deps.Gate, deps.Sessions)
	logout.Handler.Init(app, deps.Sessions)
	dashboard.Handler.Init(app, cfg, deps.Content, deps.Sessions)
	project.Handler.Init(app, cfg, deps.Content, deps.Sessions)
	skill.Handler.Init(app, deps.Content, deps.Sessions)
	message.Handler.Init(app, deps.Content, deps.Sessions)
	profile.Handler.Init(app, cfg, deps.Content, deps.Sessions)
	configuration.Handler.Init(app, cfg, deps.Sessions)

	return service
}

// cookieKey derives the cookie encryption key. Without a secret a random key
// is used and sessions do not survive a restart.
func cookieKey(secret string) string {
	if secret == "" {
		log.Warn().Msg("no session secret configured: using a random cookie key")
		return encryptcookie.GenerateKey()
	}

	return session.CookieKey(secret)
}
