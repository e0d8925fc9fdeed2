package cmd

import (
	"fmt"
	"net/http"

	"github.com/apex/log"
	"github.com/mr-shifu/rsa-messenger/core/pool"
	"github.com/mr-shifu/rsa-messenger/pkg/config"
	"github.com/mr-shifu/rsa-messenger/pkg/keystore"
	"github.com/mr-shifu/rsa-messenger/pkg/messenger"
	"github.com/mr-shifu/rsa-messenger/pkg/transport"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// openMessenger wires a Messenger from the loaded configuration. The returned
// func releases the key storage.
func openMessenger() (*messenger.Messenger, func(), error) {
	cfg, err := config.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	client, err := transport.NewClient(cfg.Server.URL, &http.Client{Timeout: cfg.Server.Timeout})
	if err != nil {
		return nil, nil, err
	}

	store, err := keystore.VaultKeystoreFactory{}.NewKeystore(cfg.Vault())
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("failed to close key storage")
		}
	}

	log.WithFields(log.Fields{
		"server":  cfg.Server.URL,
		"backend": cfg.Store.Backend,
		"dir":     cfg.Store.Dir,
	}).Debug("loaded configuration")

	m, err := messenger.New(client, store, pool.NewPool(cfg.Keygen.Workers))
	if err != nil {
		closer()
		return nil, nil, err
	}
	return m, closer, nil
}

// explain turns the messenger's sentinel errors into hints on what to run next.
func explain(err error, email string) error {
	switch {
	case errors.Is(err, messenger.ErrNoLocalKey):
		return fmt.Errorf("no local key pair found, run 'keyGen <keysize>' to generate local keys")
	case errors.Is(err, messenger.ErrNoContactKey):
		return fmt.Errorf("public key not stored locally for %s, run 'getKey %s' to retrieve it", email, email)
	case errors.Is(err, messenger.ErrUnknownContact):
		return fmt.Errorf("no private key saved for %s, run 'sendKey %s' first", email, email)
	case errors.Is(err, messenger.ErrReservedEmail):
		return fmt.Errorf("%s is a local key name and cannot be used as an email", email)
	case errors.Is(err, transport.ErrNotFound):
		return fmt.Errorf("nothing stored on the server for %s: %w", email, err)
	}
	return err
}
