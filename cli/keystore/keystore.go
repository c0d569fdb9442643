// Package keystore provides encrypted storage for provider API keys.
package keystore

import (
	"path/filepath"

	"github.com/latchlm/latchlm/cli/config"
	"github.com/latchlm/latchlm/core"
)

// Keystore defines the interface for secure key storage.
type Keystore interface {
	// Set stores a key under name, replacing any earlier value.
	Set(name, value string) error
	// Get retrieves a value by name. Returns *ErrKeyNotFound if absent.
	Get(name string) (core.Secret, error)
	// Delete removes a key by name.
	Delete(name string) error
	// List returns all stored key names in sorted order.
	List() ([]string, error)
}

// ErrKeyNotFound is returned when a requested key does not exist.
type ErrKeyNotFound struct {
	Name string
}

func (e *ErrKeyNotFound) Error() string {
	return "key not found: " + e.Name
}

// DefaultKeystorePath returns the default keystore file path, next to the
// configuration file in ~/.latchlm.
func DefaultKeystorePath() string {
	return filepath.Join(config.HomeDir(), "keys.enc")
}

// NewKeystore opens the default keystore with the default master key source.
func NewKeystore() (Keystore, error) {
	return NewFileKeystore(DefaultKeystorePath(), DefaultMasterKeySource())
}
