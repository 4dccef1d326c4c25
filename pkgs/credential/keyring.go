// Package credential stores account passwords in the system keyring so the
// config file does not have to contain them.
package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "easymail"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/easymail/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("easymail-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves the stored password for an account email address.
func Get(email string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(email)
	if err != nil {
		return "", fmt.Errorf("failed to get credential for %s: %w", email, err)
	}
	return string(item.Data), nil
}

// Set stores the password for an account email address.
func Set(email, password string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	if err := ring.Set(keyring.Item{Key: email, Data: []byte(password)}); err != nil {
		return fmt.Errorf("failed to store credential for %s: %w", email, err)
	}
	return nil
}

// Delete removes the stored password for an account email address.
func Delete(email string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	if err := ring.Remove(email); err != nil {
		return fmt.Errorf("failed to delete credential for %s: %w", email, err)
	}
	return nil
}
