package keystore

import (
	"github.com/mr-shifu/rsa-messenger/pkg/common/keystore"
	"github.com/mr-shifu/rsa-messenger/pkg/common/vault"
	vaultimpl "github.com/mr-shifu/rsa-messenger/pkg/vault"
)

type VaultKeystoreFactory struct {
	Vaults vault.VaultFactory
}

// NewKeystore creates a new Keystore over the vault built for cfg.
func (f VaultKeystoreFactory) NewKeystore(cfg interface{}) (keystore.Keystore, error) {
	vaults := f.Vaults
	if vaults == nil {
		vaults = vaultimpl.Factory{}
	}
	v, err := vaults.NewVault(cfg)
	if err != nil {
		return nil, err
	}
	return NewVaultKeystore(v), nil
}
