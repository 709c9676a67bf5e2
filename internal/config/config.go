// Package config reads the folio configuration from etc/main.toml, a .env file
// and the process environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	envPrefix = "FOLIO"

	defaultShutDownTime  = 5
	defaultSessionExpiry = 24 * time.Hour
	defaultAssetTimeout  = 60 * time.Second
	defaultBodyLimitMB   = 16
)

// envBindings keeps the variable names the site has always been deployed with.
var envBindings = map[string]string{ //nolint:gochecknoglobals
	"admin.username":              "ADMIN_USERNAME",
	"admin.password":              "ADMIN_PASSWORD",
	"admin.passwordhash":          "ADMIN_PASSWORD_HASH",
	"webserver.sessionsecret":     "SECRET_KEY",
	"db.uri":                      "MONGO_URI",
	"assets.cloudinary.cloudname": "CLOUDINARY_CLOUD_NAME",
	"assets.cloudinary.apikey":    "CLOUDINARY_API_KEY",
	"assets.cloudinary.apisecret": "CLOUDINARY_API_SECRET",
	"assets.supabase.url":         "SUPABASE_URL",
	"assets.supabase.servicekey":  "SUPABASE_SERVICE_KEY",
}

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	// a missing .env is fine, the environment may already be populated
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrap(err, "failed to read .env file")
	}

	v := viper.New()
	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, errors.Wrapf(err, "failed to bind env %s", env)
		}
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))

	if err := v.Unmarshal(&c, hook); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	return c, validate(&c)
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c.Masked()); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c.Masked()); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings folio can not start without and fills defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Admin.Username == "" {
		return errors.Wrap(ErrAdminUsernameEmpty, invalidErrMessage)
	}

	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return errors.Wrap(ErrAdminPasswordEmpty, invalidErrMessage)
	}

	switch c.DB.Driver {
	case "":
		c.DB.Driver = DriverSQLite
	case DriverSQLite, DriverMySQL, DriverPostgres, DriverMongo:
	default:
		return errors.Wrap(ErrUnknownDBDriver, invalidErrMessage)
	}

	switch c.Assets.Provider {
	case "":
		c.Assets.Provider = AssetProviderCloudinary
	case AssetProviderCloudinary, AssetProviderSupabase:
	default:
		return errors.Wrap(ErrUnknownAssetProvider, invalidErrMessage)
	}

	switch c.Webserver.Session.Storage {
	case "":
		c.Webserver.Session.Storage = SessionStorageMemory
	case SessionStorageMemory, SessionStorageDatabase:
	default:
		return errors.Wrap(ErrUnknownSessionStorage, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.Session.ExpiryTime.Duration == 0 {
		c.Webserver.Session.ExpiryTime.Duration = defaultSessionExpiry
	}

	if c.Webserver.BodyLimitMB == 0 {
		c.Webserver.BodyLimitMB = defaultBodyLimitMB
	}

	if c.Assets.Timeout.Duration == 0 {
		c.Assets.Timeout.Duration = defaultAssetTimeout
	}

	return nil
}
