// Package config is used to load the configuration file
package config

import (
	"path/filepath"
	"time"

	"github.com/mr-shifu/rsa-messenger/pkg/transport"
	"github.com/mr-shifu/rsa-messenger/pkg/vault"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type server struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type store struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
	DSN     string `mapstructure:"dsn"`
}

type keygen struct {
	Workers int `mapstructure:"workers"`
}

// Config is the configuration struct
type Config struct {
	Server server `mapstructure:"server"`
	Store  store  `mapstructure:"store"`
	Keygen keygen `mapstructure:"keygen"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.url", transport.DefaultURL)
	v.SetDefault("server.timeout", transport.DefaultTimeout)
	v.SetDefault("store.backend", vault.BackendFile)
	v.SetDefault("store.dir", ".")
	v.SetDefault("store.dsn", "")
	v.SetDefault("keygen.workers", 0)
}

// Vault returns the vault configuration of the store section.
func (c *Config) Vault() vault.Config {
	return vault.Config{Backend: c.Store.Backend, Dir: c.Store.Dir, DSN: c.Store.DSN}
}

func (c *Config) verify() error {
	if c.Server.URL == "" {
		c.Server.URL = transport.DefaultURL
	}
	if c.Server.Timeout < 0 {
		return errors.Errorf("config: negative server timeout %s", c.Server.Timeout)
	} else if c.Server.Timeout == 0 {
		c.Server.Timeout = transport.DefaultTimeout
	}

	switch c.Store.Backend {
	case "":
		c.Store.Backend = vault.BackendFile
	case vault.BackendFile, vault.BackendMemory, vault.BackendSQLite:
	default:
		return errors.Wrapf(vault.ErrUnknownBackend, "%q", c.Store.Backend)
	}
	if c.Store.Dir == "" {
		c.Store.Dir = "."
	}
	if c.Store.Backend == vault.BackendSQLite && c.Store.DSN == "" {
		c.Store.DSN = filepath.Join(c.Store.Dir, "keys.db")
	}

	if c.Keygen.Workers < 0 {
		return errors.Errorf("config: negative keygen workers %d", c.Keygen.Workers)
	}
	return nil
}

// LoadConfig loads the configuration from v
func LoadConfig(v *viper.Viper) (*Config, error) {
	var c *Config

	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "config: failed to unmarshal")
	}
	if c == nil {
		c = &Config{}
	}

	if err := c.verify(); err != nil {
		return nil, errors.WithMessage(err, "config: failed to verify")
	}

	return c, nil
}
