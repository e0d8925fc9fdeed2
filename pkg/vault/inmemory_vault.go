package vault

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrKeyNotFound  = errors.New("vault: key not found")
	ErrInvalidKeyID = errors.New("vault: invalid key id")
)

type InMemoryVault struct {
	lock sync.RWMutex
	keys map[string][]byte
}

func NewInMemoryVault() *InMemoryVault {
	return &InMemoryVault{
		keys: make(map[string][]byte),
	}
}

func (store *InMemoryVault) Import(keyID string, key []byte) error {
	if keyID == "" {
		return ErrInvalidKeyID
	}

	store.lock.Lock()
	defer store.lock.Unlock()

	store.keys[keyID] = append([]byte(nil), key...)
	return nil
}

func (store *InMemoryVault) Get(keyID string) ([]byte, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()

	key, ok := store.keys[keyID]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), key...), nil
}

func (store *InMemoryVault) Delete(keyID string) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	delete(store.keys, keyID)
	return nil
}

func (store *InMemoryVault) List() ([]string, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()

	ids := make([]string, 0, len(store.keys))
	for id := range store.keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (store *InMemoryVault) Close() error {
	return nil
}
