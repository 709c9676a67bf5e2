package auth

import "errors"

var (
	// ErrNoCredentials is returned when neither a password nor a hash is configured.
	ErrNoCredentials = errors.New("admin password or password hash required")
	// ErrInvalidHash is returned when the configured hash is not an Argon2id hash.
	ErrInvalidHash = errors.New("admin password hash is not a valid argon2id hash")
)
