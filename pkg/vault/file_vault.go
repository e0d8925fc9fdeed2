package vault

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Well known ids of the FileVault. Every other id is stored as <id>.key.
const (
	PublicKeyID  = "public"
	PrivateKeyID = "private"
	ContactsID   = "contacts"
)

const (
	keyFileExt     = ".key"
	publicKeyFile  = "public" + keyFileExt
	privateKeyFile = "private" + keyFileExt
)

// keyFile is the JSON document stored in each key file.
type keyFile struct {
	Email string `json:"email"`
	Key   string `json:"key"`
}

// FileVault keeps values as JSON key files in a directory:
//
//	public.key   {"email": "", "key": <public>}
//	private.key  {"email": <contacts>, "key": <private>}
//	<id>.key     {"email": <id>, "key": <value>}
//
// Values are stored as text, so they should be printable (base64 keys and
// email lists).
type FileVault struct {
	lock sync.RWMutex
	dir  string
}

// NewFileVault returns a vault over dir, creating it if needed.
func NewFileVault(dir string) (*FileVault, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrapf(err, "vault: failed to create key directory %s", dir)
	}
	return &FileVault{dir: dir}, nil
}

// Dir returns the key directory.
func (fv *FileVault) Dir() string {
	return fv.dir
}

func (fv *FileVault) Import(keyID string, key []byte) error {
	if err := checkKeyID(keyID); err != nil {
		return err
	}

	fv.lock.Lock()
	defer fv.lock.Unlock()

	switch keyID {
	case PublicKeyID:
		return fv.write(publicKeyFile, keyFile{Key: string(key)})
	case PrivateKeyID, ContactsID:
		kf, err := fv.read(privateKeyFile)
		if err != nil && !errors.Is(err, ErrKeyNotFound) {
			return err
		}
		if keyID == PrivateKeyID {
			kf.Key = string(key)
		} else {
			kf.Email = string(key)
		}
		return fv.write(privateKeyFile, kf)
	default:
		return fv.write(keyID+keyFileExt, keyFile{Email: keyID, Key: string(key)})
	}
}

func (fv *FileVault) Get(keyID string) ([]byte, error) {
	if err := checkKeyID(keyID); err != nil {
		return nil, err
	}

	fv.lock.RLock()
	defer fv.lock.RUnlock()

	switch keyID {
	case PublicKeyID:
		kf, err := fv.read(publicKeyFile)
		if err != nil {
			return nil, err
		}
		return []byte(kf.Key), nil
	case PrivateKeyID:
		kf, err := fv.read(privateKeyFile)
		if err != nil {
			return nil, err
		}
		if kf.Key == "" {
			return nil, ErrKeyNotFound
		}
		return []byte(kf.Key), nil
	case ContactsID:
		kf, err := fv.read(privateKeyFile)
		if err != nil {
			return nil, err
		}
		return []byte(kf.Email), nil
	default:
		kf, err := fv.read(keyID + keyFileExt)
		if err != nil {
			return nil, err
		}
		return []byte(kf.Key), nil
	}
}

func (fv *FileVault) Delete(keyID string) error {
	if err := checkKeyID(keyID); err != nil {
		return err
	}

	fv.lock.Lock()
	defer fv.lock.Unlock()

	switch keyID {
	case PrivateKeyID, ContactsID:
		kf, err := fv.read(privateKeyFile)
		if errors.Is(err, ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if keyID == PrivateKeyID {
			kf.Key = ""
		} else {
			kf.Email = ""
		}
		if kf.Key == "" && kf.Email == "" {
			return fv.remove(privateKeyFile)
		}
		return fv.write(privateKeyFile, kf)
	case PublicKeyID:
		return fv.remove(publicKeyFile)
	default:
		return fv.remove(keyID + keyFileExt)
	}
}

func (fv *FileVault) List() ([]string, error) {
	fv.lock.RLock()
	defer fv.lock.RUnlock()

	entries, err := os.ReadDir(fv.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "vault: failed to read key directory %s", fv.dir)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, keyFileExt) {
			continue
		}
		switch name {
		case publicKeyFile:
			ids = append(ids, PublicKeyID)
		case privateKeyFile:
			kf, err := fv.read(name)
			if err != nil {
				return nil, err
			}
			if kf.Key != "" {
				ids = append(ids, PrivateKeyID)
			}
			if kf.Email != "" {
				ids = append(ids, ContactsID)
			}
		default:
			ids = append(ids, strings.TrimSuffix(name, keyFileExt))
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (fv *FileVault) Close() error {
	return nil
}

func (fv *FileVault) read(name string) (keyFile, error) {
	var kf keyFile
	data, err := os.ReadFile(filepath.Join(fv.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return kf, ErrKeyNotFound
	}
	if err != nil {
		return kf, errors.Wrapf(err, "vault: failed to read %s", name)
	}
	if err := json.Unmarshal(data, &kf); err != nil {
		return kf, errors.Wrapf(err, "vault: malformed key file %s", name)
	}
	return kf, nil
}

// write replaces name atomically through a temporary file in the same directory.
func (fv *FileVault) write(name string, kf keyFile) error {
	data, err := json.Marshal(kf)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(fv.dir, name+".*")
	if err != nil {
		return errors.Wrapf(err, "vault: failed to write %s", name)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "vault: failed to write %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "vault: failed to write %s", name)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(fv.dir, name)); err != nil {
		return errors.Wrapf(err, "vault: failed to write %s", name)
	}
	return nil
}

func (fv *FileVault) remove(name string) error {
	err := os.Remove(filepath.Join(fv.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "vault: failed to remove %s", name)
	}
	return nil
}

// checkKeyID rejects ids that would escape the key directory.
func checkKeyID(keyID string) error {
	if keyID == "" || keyID == "." || keyID == ".." || strings.ContainsAny(keyID, `/\`) {
		return errors.Wrapf(ErrInvalidKeyID, "%q", keyID)
	}
	return nil
}
