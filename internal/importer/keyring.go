package importer

import (
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

// Credentials for web imports live in the OS keychain, never in flags,
// environment variables, or the database.

// SavePassword stores the password for a CardDAV account under the
// application's keyring service.
func SavePassword(user, password string) error {
	if err := keyring.Set(config.KeyringService, user, password); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringSet, err)
	}
	return nil
}

// LoadPassword retrieves the stored password for a CardDAV account.
// A missing entry returns an empty password without error; servers that
// need no auth are common for read-only exports.
func LoadPassword(user string) (string, error) {
	pass, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", config.ErrKeyringGet, err)
	}
	return pass, nil
}
