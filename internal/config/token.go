package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// defaultAccount is the keychain account used when no organization is set.
const defaultAccount = "default"

// ErrNoToken means neither the environment nor the keychain holds a token.
var ErrNoToken = errors.New("no GitHub token configured (set GITHUB_TOKEN or run: ghprojsync login)")

// KeychainAccount returns the keychain account name for the configured org.
func (c *Config) KeychainAccount() string {
	if c.Org == "" {
		return defaultAccount
	}
	return c.Org
}

// ResolveToken returns the environment token, falling back to the keychain.
func (c *Config) ResolveToken() (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}
	token, err := LoadToken(c.KeychainAccount())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("read keychain: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// LoadToken retrieves a stored token from the OS keychain.
func LoadToken(account string) (string, error) {
	if account == "" {
		return "", keyring.ErrNotFound
	}
	return keyring.Get(AppName, account)
}

// StoreToken persists a token into the OS keychain.
func StoreToken(account, token string) error {
	if account == "" || token == "" {
		return keyring.ErrNotFound
	}
	return keyring.Set(AppName, account, token)
}

// DeleteToken removes a stored token. A missing entry is not an error.
func DeleteToken(account string) error {
	err := keyring.Delete(AppName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// HasStoredToken reports whether the keychain holds a token for account.
func HasStoredToken(account string) bool {
	token, err := LoadToken(account)
	return err == nil && token != ""
}
