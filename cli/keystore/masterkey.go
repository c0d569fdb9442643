package keystore

import (
	"crypto/sha256"
	"errors"
	"os"
)

// EnvMasterKey is the environment variable holding the keystore passphrase.
const EnvMasterKey = "LATCHLM_MASTER_KEY"

// MasterKeySource supplies the secret the file encryption key is derived from.
type MasterKeySource interface {
	MasterKey() ([]byte, error)
}

// EnvSource reads the master key from an environment variable.
type EnvSource struct {
	Var string
}

// MasterKey returns the variable's value. An unset or empty variable is an error.
func (s EnvSource) MasterKey() ([]byte, error) {
	v := os.Getenv(s.Var)
	if v == "" {
		return nil, errors.New(s.Var + " is not set")
	}
	return []byte(v), nil
}

// MachineSource derives a master key from the host and user names.
// It only keeps keys from casual inspection; set LATCHLM_MASTER_KEY for
// real protection.
type MachineSource struct{}

// MasterKey hashes the machine identity.
func (MachineSource) MasterKey() ([]byte, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}

	sum := sha256.Sum256([]byte(hostname + ":" + username + ":latchlm-keystore"))
	return sum[:], nil
}

// StaticSource is a fixed master key.
type StaticSource []byte

// MasterKey returns the key.
func (s StaticSource) MasterKey() ([]byte, error) {
	if len(s) == 0 {
		return nil, errors.New("empty master key")
	}
	return s, nil
}

// DefaultMasterKeySource uses LATCHLM_MASTER_KEY when set and the machine
// identity otherwise.
func DefaultMasterKeySource() MasterKeySource {
	if os.Getenv(EnvMasterKey) != "" {
		return EnvSource{Var: EnvMasterKey}
	}
	return MachineSource{}
}
