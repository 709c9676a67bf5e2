package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrAdminUsernameEmpty error if no admin username was configured.
	ErrAdminUsernameEmpty = errors.New("config admin.username (ADMIN_USERNAME) can not be empty")

	// ErrAdminPasswordEmpty error if neither a password nor a password hash was configured.
	ErrAdminPasswordEmpty = errors.New("config admin.password or admin.passwordhash (ADMIN_PASSWORD / ADMIN_PASSWORD_HASH) must be set")

	// ErrUnknownDBDriver error if db.driver is not one of the supported drivers.
	ErrUnknownDBDriver = errors.New("config db.driver must be one of sqlite, mysql, postgres, mongo")

	// ErrUnknownAssetProvider error if assets.provider is not supported.
	ErrUnknownAssetProvider = errors.New("config assets.provider must be one of cloudinary, supabase")

	// ErrUnknownSessionStorage error if webserver.session.storage is not supported.
	ErrUnknownSessionStorage = errors.New("config webserver.session.storage must be memory or database")
)
