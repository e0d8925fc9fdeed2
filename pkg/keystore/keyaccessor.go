package keystore

type VaultKeyAccessor struct {
	keyID string
	ks    *VaultKeystore
}

func NewVaultKeyAccessor(keyID string, ks *VaultKeystore) *VaultKeyAccessor {
	return &VaultKeyAccessor{keyID: keyID, ks: ks}
}

func (ka *VaultKeyAccessor) Import(key []byte) error {
	return ka.ks.Import(ka.keyID, key)
}

func (ka *VaultKeyAccessor) Get() ([]byte, error) {
	return ka.ks.Get(ka.keyID)
}

func (ka *VaultKeyAccessor) Delete() error {
	return ka.ks.Delete(ka.keyID)
}
