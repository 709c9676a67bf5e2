// Package daemon wires storage, the media host, sessions and the web service
// together and runs them until shutdown.
package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/asset"
	"github.com/folio-cms/folio/internal/asset/cloudinary"
	"github.com/folio-cms/folio/internal/asset/supabase"
	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/content"
	"github.com/folio-cms/folio/internal/db"
	"github.com/folio-cms/folio/internal/db/dsn"
	"github.com/folio-cms/folio/internal/db/gormstore"
	"github.com/folio-cms/folio/internal/db/mongostore"
	"github.com/folio-cms/folio/internal/web"
	"github.com/folio-cms/folio/internal/web/session"
)

// ErrSessionStorageDriver is returned when database sessions are asked for on
// a driver the session storages do not support.
var ErrSessionStorageDriver = errors.New("database sessions need the mysql or postgres driver")

const closeTimeout = 10 * time.Second

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	store      db.Store
	webService *web.Service
}

// Start runs the web service until a shutdown signal, then closes the store.
func (d *Daemon) Start() error {
	errc := make(chan error, 1)

	go func() {
		errc <- d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
	}()

	go d.webService.WaitShutdown()

	err := <-errc

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if closeErr := d.store.Close(ctx); closeErr != nil {
		log.Error().Err(closeErr).Msg("failed to close store")
	}

	return err
}

// New creates a new Daemon instance with the provided configuration. The
// logger is expected to be initialized.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	store, err := OpenStore(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	host, err := NewAssetHost(cfg.Assets)
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}

	storage, err := SessionStorage(cfg)
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}

	gate, err := auth.NewGate(cfg.Admin)
	if err != nil {
		_ = store.Close(ctx)
		return nil, errors.Wrap(err, "failed to set up admin login")
	}

	sessions := session.New(session.ConfigFor(cfg, storage))

	log.Info().
		Str("db", cfg.DB.Driver).
		Str("assets", cfg.Assets.Provider).
		Str("sessions", cfg.Webserver.Session.Storage).
		Msg("folio initialized")

	return &Daemon{
		cfg:   cfg,
		store: store,
		webService: web.New(cfg, web.Deps{
			Content:  content.New(store, host),
			Gate:     gate,
			Sessions: sessions,
		}),
	}, nil
}

// OpenStore opens the document store the driver names.
func OpenStore(ctx context.Context, cfg config.DB) (db.Store, error) {
	if cfg.Driver == config.DriverMongo {
		store, err := mongostore.Open(ctx, cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open mongo store")
		}

		return store, nil
	}

	store, err := gormstore.Open(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s store", cfg.Driver)
	}

	return store, nil
}

// NewAssetHost creates the media host the provider names.
func NewAssetHost(cfg config.Assets) (asset.Host, error) {
	switch cfg.Provider {
	case config.AssetProviderSupabase:
		host, err := supabase.New(cfg.Supabase)
		return host, errors.Wrap(err, "failed to set up supabase storage")
	case config.AssetProviderCloudinary:
		host, err := cloudinary.New(cfg.Cloudinary, cfg.Timeout.Duration)
		return host, errors.Wrap(err, "failed to set up cloudinary")
	default:
		return nil, config.ErrUnknownAssetProvider
	}
}

// SessionStorage returns the fiber storage sessions are kept in, nil for memory.
func SessionStorage(cfg *config.Config) (fiber.Storage, error) {
	if cfg.Webserver.Session.Storage != config.SessionStorageDatabase {
		return nil, nil //nolint:nilnil // nil storage selects the in-memory default
	}

	table := cfg.Webserver.Session.Table
	if table == "" {
		table = "sessions"
	}

	switch cfg.DB.Driver {
	case config.DriverMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(cfg.DB),
			Table:         table,
		}), nil
	case config.DriverPostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg.DB),
			Table:         table,
		}), nil
	default:
		return nil, errors.Wrap(ErrSessionStorageDriver, cfg.DB.Driver)
	}
}
