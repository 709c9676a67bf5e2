// Package db defines the document store folio keeps its content in.
// Implementations live in gormstore and mongostore.
package db

import (
	"context"
	"errors"

	"github.com/folio-cms/folio/internal/db/models"
)

// ErrNotFound is returned when a lookup or delete names a document that does not exist.
var ErrNotFound = errors.New("document not found")

// Store is the set of collections behind the site: projects, skills, messages and settings.
type Store interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	ListSkills(ctx context.Context) ([]models.Skill, error)
	CreateSkill(ctx context.Context, s *models.Skill) error
	DeleteSkill(ctx context.Context, id string) error

	// ListMessages returns messages newest first.
	ListMessages(ctx context.Context) ([]models.Message, error)
	CreateMessage(ctx context.Context, m *models.Message) error
	DeleteMessage(ctx context.Context, id string) error

	ListSettings(ctx context.Context) ([]models.Setting, error)
	GetSetting(ctx context.Context, name string) (*models.Setting, error)
	// UpsertSetting sets the url of the named setting, creating it when missing.
	UpsertSetting(ctx context.Context, name, url string) (*models.Setting, error)

	Close(ctx context.Context) error
}
