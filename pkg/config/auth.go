package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/keygen"
)

var (
	// ErrNilConfig is returned when a nil config is passed to a function.
	ErrNilConfig = errors.New("nil config")

	// ErrEmptyKeyPath is returned when the token signing key path is empty.
	ErrEmptyKeyPath = errors.New("empty token key path")
)

// KeyPair returns the server's token signing key pair. The key is generated
// and written to disk if it doesn't exist.
func KeyPair(cfg *Config) (*keygen.SSHKeyPair, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Auth.KeyPath == "" {
		return nil, ErrEmptyKeyPath
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Auth.KeyPath), os.ModePerm); err != nil {
		return nil, err
	}

	return keygen.New(cfg.Auth.KeyPath, keygen.WithKeyType(keygen.Ed25519), keygen.WithWrite())
}
