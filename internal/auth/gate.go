package auth

import (
	"crypto/subtle"

	"github.com/alexedwards/argon2id"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/config"
)

// Gate verifies the admin credentials.
type Gate struct {
	username []byte
	hash     string
}

// NewGate builds a Gate from the admin settings. PasswordHash wins over Password.
func NewGate(cfg config.Admin) (*Gate, error) {
	hash := cfg.PasswordHash

	switch {
	case hash != "":
		if _, _, _, err := argon2id.DecodeHash(hash); err != nil {
			return nil, errors.Wrap(ErrInvalidHash, err.Error())
		}
	case cfg.Password != "":
		var err error
		if hash, err = HashPassword(cfg.Password); err != nil {
			return nil, err
		}

		log.Warn().Msg("admin password configured in plaintext, consider ADMIN_PASSWORD_HASH")
	default:
		return nil, ErrNoCredentials
	}

	return &Gate{username: []byte(cfg.Username), hash: hash}, nil
}

// Verify reports whether username and password match the admin credentials.
func (g *Gate) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), g.username) == 1

	passOK, err := argon2id.ComparePasswordAndHash(password, g.hash)
	if err != nil {
		log.Error().Err(err).Msg("failed to verify password")
		return false
	}

	return userOK && passOK
}

// HashPassword hashes a plaintext password with the default Argon2id parameters.
func HashPassword(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return hash, nil
}
