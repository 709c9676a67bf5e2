// Package profile replaces the profile image, the illustration and the CV.
package profile

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/asset"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/db/models"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/handler/admin/dashboard"
	authmiddleware "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// UpdatePath receives the profile bundle.
	UpdatePath = handler.RootPath + "update_profile"

	// UploadCVPath receives a CV on its own.
	UploadCVPath = handler.RootPath + "upload_cv"
)

// Multipart field names of the bundle form.
const (
	FieldProfileImage = "profile_image"
	FieldIllustration = "illustration"
	FieldCV           = "cv"
)

// Service is the profile handler service.
type Service struct {
	cfg     *config.Config
	content *content.Service
}

// Handler is the profile handler.
var Handler = Service{}

// Init initializes the profile handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *content.Service, sessions *session.Manager) {
	if app == nil || cfg == nil || svc == nil || sessions == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.content = svc

	guard := authmiddleware.RequireLogin(sessions)

	app.Post(UpdatePath, guard, s.Update)
	app.Post(UploadCVPath, guard, s.UploadCV)
}

// Update replaces every asset a file was sent for and renders the dashboard
// with one outcome per asset.
func (s *Service) Update(c *fiber.Ctx) error {
	var in content.BundleInput

	parts := []struct {
		field string
		dst   **asset.File
	}{
		{FieldProfileImage, &in.ProfileImage},
		{FieldIllustration, &in.Illustration},
		{FieldCV, &in.CV},
	}

	closers := make([]func(), 0, len(parts))
	defer func() {
		for _, closeFile := range closers {
			closeFile()
		}
	}()

	for _, p := range parts {
		file, closeFile, err := handler.FormFile(c, p.field)
		if err != nil {
			return err
		}

		closers = append(closers, closeFile)
		*p.dst = file
	}

	report := s.content.UpdateProfileBundle(c.UserContext(), in)

	data, err := dashboard.Data(c.UserContext(), s.cfg, s.content)
	if err != nil {
		return err
	}

	data["Report"] = report

	return c.Status(Status(report)).Render(dashboard.TemplateName, data, handler.BaseLayout)
}

// UploadCV replaces the CV link.
func (s *Service) UploadCV(c *fiber.Ctx) error {
	file, closeFile, err := handler.FormFile(c, FieldCV)
	if err != nil {
		return err
	}
	defer closeFile()

	if file == nil {
		return fiber.NewError(fiber.StatusBadRequest, "no file selected")
	}

	if _, err = s.content.ReplaceAsset(c.UserContext(), models.SettingCVLink, file, asset.KindRaw); err != nil {
		return err
	}

	return c.Redirect(handler.AdminPath)
}

// Status is the response status for a bundle report: 502 when every
// attempted asset failed, 207 when only some did.
func Status(report content.BundleReport) int {
	failed := report.Failed()

	switch {
	case failed == 0:
		return fiber.StatusOK
	case failed == report.Attempted():
		return fiber.StatusBadGateway
	default:
		return fiber.StatusMultiStatus
	}
}
