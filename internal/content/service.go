// Package content manages projects, skills, messages and the singleton media
// settings, keeping the media host in step with the document store.
package content

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/asset"
	"github.com/folio-cms/folio/internal/db"
	"github.com/folio-cms/folio/internal/db/models"
)

// Service is safe for concurrent use. It holds no state besides its collaborators.
type Service struct {
	store    db.Store
	host     asset.Host
	validate *validator.Validate
}

// New creates a Service.
func New(store db.Store, host asset.Host) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})

	return &Service{store: store, host: host, validate: v}
}

type projectForm struct {
	Title       string      `form:"title"`
	Description string      `form:"description"`
	Image       *asset.File `form:"image" validate:"required"`
}

type skillForm struct {
	Name string `form:"skill_name" validate:"required"`
	Icon string `form:"icon_class" validate:"required"`
}

type messageForm struct {
	Name  string `form:"name" validate:"required"`
	Email string `form:"email" validate:"required"`
	Text  string `form:"message" validate:"required"`
}

// check runs the struct tags on form and names the missing fields.
func (s *Service) check(form any) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(ErrValidation, err.Error())
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}

	return errors.Wrapf(ErrValidation, "missing %s", strings.Join(fields, ", "))
}

// ListProjects returns all projects in store order.
func (s *Service) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.store.ListProjects(ctx)
}

// AddProject uploads the image and stores a new project pointing at it.
func (s *Service) AddProject(ctx context.Context, title, description string, image *asset.File) (*models.Project, error) {
	form := projectForm{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Image:       present(image),
	}
	if err := s.check(form); err != nil {
		return nil, err
	}

	up, err := s.upload(ctx, form.Image, asset.KindImage)
	if err != nil {
		return nil, err
	}

	p := &models.Project{
		Title:       form.Title,
		Description: form.Description,
		ImageURL:    up.URL,
	}

	if err = s.store.CreateProject(ctx, p); err != nil {
		s.destroy(ctx, up.URL, asset.KindImage)
		return nil, errors.Wrap(err, "failed to store project")
	}

	log.Info().Str("id", p.ID).Str("title", p.Title).Msg("project added")

	return p, nil
}

// DeleteProject removes the project, then its image on the media host.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "project %s", id)
	}

	if err = s.store.DeleteProject(ctx, id); err != nil {
		return errors.Wrapf(err, "project %s", id)
	}

	if p.ImageURL != "" {
		s.destroy(ctx, p.ImageURL, asset.KindImage)
	}

	log.Info().Str("id", id).Msg("project deleted")

	return nil
}

// ListSkills returns all skills in store order.
func (s *Service) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return s.store.ListSkills(ctx)
}

// AddSkill stores a skill. Both name and icon are required.
func (s *Service) AddSkill(ctx context.Context, name, icon string) (*models.Skill, error) {
	form := skillForm{Name: strings.TrimSpace(name), Icon: strings.TrimSpace(icon)}
	if err := s.check(form); err != nil {
		return nil, err
	}

	sk := &models.Skill{Name: form.Name, Icon: form.Icon}
	if err := s.store.CreateSkill(ctx, sk); err != nil {
		return nil, errors.Wrap(err, "failed to store skill")
	}

	return sk, nil
}

// DeleteSkill removes a skill.
func (s *Service) DeleteSkill(ctx context.Context, id string) error {
	return errors.Wrapf(s.store.DeleteSkill(ctx, id), "skill %s", id)
}

// ListMessages returns contact messages, newest first.
func (s *Service) ListMessages(ctx context.Context) ([]models.Message, error) {
	return s.store.ListMessages(ctx)
}

// SubmitMessage stores a contact message. An incomplete message is dropped
// without an error, the public form always thanks the visitor.
func (s *Service) SubmitMessage(ctx context.Context, name, email, text string) error {
	form := messageForm{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Text:  strings.TrimSpace(text),
	}
	if err := s.check(form); err != nil {
		log.Debug().Err(err).Msg("incomplete contact message ignored")
		return nil
	}

	m := &models.Message{Name: form.Name, Email: form.Email, Text: form.Text}

	return errors.Wrap(s.store.CreateMessage(ctx, m), "failed to store message")
}

// DeleteMessage removes a contact message.
func (s *Service) DeleteMessage(ctx context.Context, id string) error {
	return errors.Wrapf(s.store.DeleteMessage(ctx, id), "message %s", id)
}

// GetSetting returns the URL stored under name and whether it exists.
func (s *Service) GetSetting(ctx context.Context, name string) (string, bool, error) {
	st, err := s.store.GetSetting(ctx, name)

	switch {
	case errors.Is(err, db.ErrNotFound):
		return "", false, nil
	case err != nil:
		return "", false, errors.Wrapf(err, "setting %s", name)
	}

	return st.URL, true, nil
}

// present treats a file without content as absent.
func present(file *asset.File) *asset.File {
	if file == nil || file.Content == nil {
		return nil
	}

	return file
}
