package keystore

import "io"

type Keystore interface {
	Import(keyID string, key []byte) error
	Get(keyID string) ([]byte, error)
	Delete(keyID string) error
	List() ([]string, error)
	KeyAccessor(keyID string) KeyAccessor

	// Export writes a backup of every stored key to w.
	Export(w io.Writer) error

	// Restore imports every key of a backup produced by Export.
	Restore(r io.Reader) error

	Close() error
}

// KeyAccessor is bound to a single key id.
type KeyAccessor interface {
	Import(key []byte) error
	Get() ([]byte, error)
	Delete() error
}
