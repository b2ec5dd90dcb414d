// Package credential stores delivery-channel secrets in the system
// keyring so they never land in the config file: the SMTP account
// password and the bearer tokens for the push and SMS webhooks.
package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "farmdash"

// Well-known credential keys.
const (
	KeySMTPPassword = "smtp-password"
	KeyPushToken    = "push-token"
	KeySMSToken     = "sms-token"
)

// ValidKeys lists every key the application reads.
func ValidKeys() []string {
	return []string{KeySMTPPassword, KeyPushToken, KeySMSToken}
}

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
		FileDir:                  "~/.config/farmdash/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("farmdash-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key from the system keyring.
func Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}
