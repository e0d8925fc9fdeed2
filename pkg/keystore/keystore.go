package keystore

import (
	"errors"

	"github.com/mr-shifu/rsa-messenger/pkg/common/keystore"
	"github.com/mr-shifu/rsa-messenger/pkg/common/vault"
	vaultimpl "github.com/mr-shifu/rsa-messenger/pkg/vault"
)

var (
	ErrKeyNotFound = errors.New("keystore: key not found")
)

// VaultKeystore addresses keys by name on top of a vault.
type VaultKeystore struct {
	v vault.Vault
}

func NewVaultKeystore(v vault.Vault) *VaultKeystore {
	return &VaultKeystore{v: v}
}

func (ks *VaultKeystore) Import(keyID string, key []byte) error {
	return ks.v.Import(keyID, key)
}

func (ks *VaultKeystore) Get(keyID string) ([]byte, error) {
	key, err := ks.v.Get(keyID)
	if errors.Is(err, vaultimpl.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	return key, err
}

func (ks *VaultKeystore) Delete(keyID string) error {
	return ks.v.Delete(keyID)
}

func (ks *VaultKeystore) List() ([]string, error) {
	return ks.v.List()
}

func (ks *VaultKeystore) KeyAccessor(keyID string) keystore.KeyAccessor {
	return NewVaultKeyAccessor(keyID, ks)
}

// Close closes the underlying vault.
func (ks *VaultKeystore) Close() error {
	return ks.v.Close()
}
