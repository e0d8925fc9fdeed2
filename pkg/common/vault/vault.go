package vault

// Vault stores raw byte values under string ids.
type Vault interface {
	// Import stores key under keyID, replacing any previous value.
	Import(keyID string, key []byte) error

	// Get returns the value stored under keyID.
	Get(keyID string) ([]byte, error)

	// Delete removes keyID. Deleting a missing id is not an error.
	Delete(keyID string) error

	// List returns all stored ids in ascending order.
	List() ([]string, error)

	// Close releases the resources held by the vault.
	Close() error
}
