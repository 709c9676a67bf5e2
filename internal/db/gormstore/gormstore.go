// Package gormstore implements db.Store on SQL databases through gorm.
package gormstore

import (
	"context"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db"
	"github.com/folio-cms/folio/internal/db/controller/message"
	"github.com/folio-cms/folio/internal/db/controller/project"
	"github.com/folio-cms/folio/internal/db/controller/setting"
	"github.com/folio-cms/folio/internal/db/controller/skill"
	"github.com/folio-cms/folio/internal/db/dsn"
	"github.com/folio-cms/folio/internal/db/models"
	gormadapter "github.com/folio-cms/folio/internal/logger/adapter/gorm"
)

// Store is a db.Store backed by gorm.
type Store struct {
	gdb *gorm.DB
}

var _ db.Store = (*Store)(nil)

// Open connects to the configured SQL database and migrates the schema.
func Open(cfg config.DB) (*Store, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormadapter.New(cfg.SlowQueryThreshold.Duration),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.Driver)
	}

	return New(gdb)
}

// Dialector picks the gorm driver for cfg.Driver.
func Dialector(cfg config.DB) (gorm.Dialector, error) {
	source, err := dsn.Create(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(source), nil
	case config.DriverPostgres:
		return postgres.Open(source), nil
	default:
		return sqlite.Open(source), nil
	}
}

// New wraps an open gorm connection and migrates the schema.
func New(gdb *gorm.DB) (*Store, error) {
	if err := gdb.AutoMigrate(
		&models.Project{},
		&models.Skill{},
		&models.Message{},
		&models.Setting{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return &Store{gdb: gdb}, nil
}

func (s *Store) with(ctx context.Context) *gorm.DB {
	return s.gdb.WithContext(ctx)
}

// ListProjects implements db.Store.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	return project.GetAll(s.with(ctx))
}

// CreateProject implements db.Store.
func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	return project.Create(s.with(ctx), p)
}

// GetProject implements db.Store.
func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	p, err := project.Get(s.with(ctx), id)

	return p, notFound(err, project.ErrProjectNotFound, project.ErrProjectIDEmpty)
}

// DeleteProject implements db.Store.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return notFound(project.Delete(s.with(ctx), id), project.ErrProjectNotFound, project.ErrProjectIDEmpty)
}

// ListSkills implements db.Store.
func (s *Store) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return skill.GetAll(s.with(ctx))
}

// CreateSkill implements db.Store.
func (s *Store) CreateSkill(ctx context.Context, sk *models.Skill) error {
	return skill.Create(s.with(ctx), sk)
}

// DeleteSkill implements db.Store.
func (s *Store) DeleteSkill(ctx context.Context, id string) error {
	return notFound(skill.Delete(s.with(ctx), id), skill.ErrSkillNotFound)
}

// ListMessages implements db.Store.
func (s *Store) ListMessages(ctx context.Context) ([]models.Message, error) {
	return message.GetAll(s.with(ctx))
}

// CreateMessage implements db.Store.
func (s *Store) CreateMessage(ctx context.Context, m *models.Message) error {
	return message.Create(s.with(ctx), m)
}

// DeleteMessage implements db.Store.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	return notFound(message.Delete(s.with(ctx), id), message.ErrMessageNotFound)
}

// ListSettings implements db.Store.
func (s *Store) ListSettings(ctx context.Context) ([]models.Setting, error) {
	return setting.GetAll(s.with(ctx))
}

// GetSetting implements db.Store.
func (s *Store) GetSetting(ctx context.Context, name string) (*models.Setting, error) {
	st, err := setting.Get(s.with(ctx), name)

	return st, notFound(err, setting.ErrSettingNotFound)
}

// UpsertSetting implements db.Store.
func (s *Store) UpsertSetting(ctx context.Context, name, url string) (*models.Setting, error) {
	return setting.Set(s.with(ctx), name, url)
}

// Close implements db.Store.
func (s *Store) Close(_ context.Context) error {
	sqlDB, err := s.gdb.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// notFound maps the controllers' not-found errors onto db.ErrNotFound.
func notFound(err error, sentinels ...error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return errors.Wrap(db.ErrNotFound, err.Error())
		}
	}

	return err
}
