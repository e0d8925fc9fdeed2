package vault

import (
	"github.com/mr-shifu/rsa-messenger/pkg/common/vault"
	"github.com/pkg/errors"
)

// Backend names accepted by Config.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var ErrUnknownBackend = errors.New("vault: unknown backend")

// Config selects and configures a vault backend.
type Config struct {
	Backend string
	// Dir is the key directory of the file backend.
	Dir     string
	// DSN is the database path of the sqlite backend.
	DSN     string
}

type Factory struct{}

// NewVault creates a new Vault instance for a Config (or *Config).
func (f Factory) NewVault(cfg interface{}) (vault.Vault, error) {
	var c Config
	switch t := cfg.(type) {
	case Config:
		c = t
	case *Config:
		c = *t
	case nil:
		c = Config{Backend: BackendMemory}
	default:
		return nil, errors.Errorf("vault: unsupported config type %T", cfg)
	}

	switch c.Backend {
	case BackendMemory:
		return NewInMemoryVault(), nil
	case BackendFile, "":
		return NewFileVault(c.Dir)
	case BackendSQLite:
		return NewSQLiteVault(c.DSN)
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", c.Backend)
	}
}
