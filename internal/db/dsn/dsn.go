// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/folio-cms/folio/internal/config"
)

const (
	defaultMySQLExtras = "charset=utf8mb4&parseTime=True&loc=UTC"
	defaultSQLitePath  = "folio.db"
)

// Create builds the Data Source Name for the configured SQL driver.
func Create(cfg config.DB) (string, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return MySQL(cfg), nil
	case config.DriverPostgres:
		return Postgres(cfg), nil
	case config.DriverSQLite, "":
		return SQLite(cfg), nil
	default:
		return "", fmt.Errorf("%w: %q has no sql dsn", config.ErrUnknownDBDriver, cfg.Driver)
	}
}

// MySQL builds a go-sql-driver style DSN, user:pass@tcp(host:port)/name?extras.
func MySQL(cfg config.DB) string {
	extras := cfg.Extras
	if extras == "" {
		extras = defaultMySQLExtras
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
		extras,
	)
}

// Postgres builds a postgres:// URL. Both gorm and the session storage accept it.
func Postgres(cfg config.DB) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: cfg.Extras,
	}

	return u.String()
}

// SQLite returns the database file path.
func SQLite(cfg config.DB) string {
	if cfg.Path == "" {
		return defaultSQLitePath
	}

	return cfg.Path
}
