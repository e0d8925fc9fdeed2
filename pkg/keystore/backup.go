package keystore

import (
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

const backupVersion = 1

var ErrBadBackup = errors.New("keystore: malformed backup")

type backupEntry struct {
	ID   string `cbor:"1,keyasint"`
	Data []byte `cbor:"2,keyasint"`
}

type rawBackup struct {
	Version   int           `cbor:"1,keyasint"`
	CreatedAt int64         `cbor:"2,keyasint"`
	Entries   []backupEntry `cbor:"3,keyasint"`
}

// Export writes all keys of the store to w as a single cbor document.
func (ks *VaultKeystore) Export(w io.Writer) error {
	ids, err := ks.List()
	if err != nil {
		return err
	}

	raw := rawBackup{
		Version:   backupVersion,
		CreatedAt: time.Now().Unix(),
		Entries:   make([]backupEntry, 0, len(ids)),
	}
	for _, id := range ids {
		data, err := ks.Get(id)
		if err != nil {
			return errors.WithMessagef(err, "keystore: failed to export %s", id)
		}
		raw.Entries = append(raw.Entries, backupEntry{ID: id, Data: data})
	}

	return cbor.NewEncoder(w).Encode(raw)
}

// Restore imports every key of a backup produced by Export. Keys that are not
// part of the backup are left untouched.
func (ks *VaultKeystore) Restore(r io.Reader) error {
	var raw rawBackup
	if err := cbor.NewDecoder(r).Decode(&raw); err != nil {
		return errors.Wrap(ErrBadBackup, err.Error())
	}
	if raw.Version != backupVersion {
		return errors.Wrapf(ErrBadBackup, "unsupported version %d", raw.Version)
	}
	for _, e := range raw.Entries {
		if e.ID == "" {
			return errors.Wrap(ErrBadBackup, "entry without id")
		}
	}

	for _, e := range raw.Entries {
		if err := ks.Import(e.ID, e.Data); err != nil {
			return errors.WithMessagef(err, "keystore: failed to restore %s", e.ID)
		}
	}
	return nil
}
