package config

import (
	"time"

	"github.com/folio-cms/folio/internal/logger"
)

// Session storage backends.
const (
	SessionStorageMemory   = "memory"
	SessionStorageDatabase = "database"
)

// Duration is a time.Duration that dumps as a human readable string.
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = v

	return nil
}

// Session settings.
type Session struct {
	ExpiryTime Duration
	Storage    string // memory or database
	Table      string
}

// Admin holds the single admin credential pair.
type Admin struct {
	Username     string
	Password     string // plaintext, hashed once at startup
	PasswordHash string // argon2id hash, preferred over Password
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	Tagline   string
	Admin     Admin
	DB        DB
	Assets    Assets
	Log       logger.Log
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	SessionSecret  string  // secret the cookie encryption key is derived from (SECRET_KEY)
	BodyLimitMB    int     // max request body size, uploads included
	Session        Session // session settings
}

// Masked returns a copy of c with every secret replaced, for dumping.
func (c Config) Masked() Config {
	const mask = "****"

	out := c

	for _, s := range []*string{
		&out.Admin.Password,
		&out.Admin.PasswordHash,
		&out.DB.Password,
		&out.DB.URI,
		&out.Assets.Cloudinary.APISecret,
		&out.Assets.Supabase.ServiceKey,
		&out.Webserver.SessionSecret,
	} {
		if *s != "" {
			*s = mask
		}
	}

	return out
}
