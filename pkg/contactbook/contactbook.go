package contactbook

import (
	"strings"
	"sync"

	"github.com/mr-shifu/rsa-messenger/pkg/common/keystore"
	keystoreimpl "github.com/mr-shifu/rsa-messenger/pkg/keystore"
	"github.com/pkg/errors"
)

// KeyID is the keystore id under which the contact list is persisted.
const KeyID = "contacts"

const separator = ", "

// ContactBook is the append-only set of emails whose public keys were handed
// out with sendKey. Only messages for these emails can be read with getMsg.
type ContactBook struct {
	lock   sync.RWMutex
	store  keystore.KeyAccessor
	emails []string
}

// Load reads the contact list from ks. A missing list is an empty book.
func Load(ks keystore.Keystore) (*ContactBook, error) {
	cb := &ContactBook{store: ks.KeyAccessor(KeyID)}
	data, err := cb.store.Get()
	if err != nil && !errors.Is(err, keystoreimpl.ErrKeyNotFound) {
		return nil, errors.WithMessage(err, "contactbook: failed to load contacts")
	}
	cb.emails = Parse(string(data))
	return cb, nil
}

// Parse splits a persisted contact list. Blank entries are dropped.
func Parse(s string) []string {
	var emails []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" && !containsString(emails, e) {
			emails = append(emails, e)
		}
	}
	return emails
}

// Add appends email and persists the list. Adding a known email is a no-op.
func (cb *ContactBook) Add(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || strings.Contains(email, ",") {
		return errors.Errorf("contactbook: invalid email %q", email)
	}

	cb.lock.Lock()
	defer cb.lock.Unlock()

	if containsString(cb.emails, email) {
		return nil
	}
	emails := append(append([]string(nil), cb.emails...), email)
	if err := cb.store.Import([]byte(strings.Join(emails, separator))); err != nil {
		return errors.WithMessage(err, "contactbook: failed to store contacts")
	}
	cb.emails = emails
	return nil
}

// Contains reports whether email is in the book.
func (cb *ContactBook) Contains(email string) bool {
	cb.lock.RLock()
	defer cb.lock.RUnlock()

	return containsString(cb.emails, strings.TrimSpace(email))
}

// List returns the emails in insertion order.
func (cb *ContactBook) List() []string {
	cb.lock.RLock()
	defer cb.lock.RUnlock()

	return append([]string(nil), cb.emails...)
}

// Reset empties the book.
func (cb *ContactBook) Reset() error {
	cb.lock.Lock()
	defer cb.lock.Unlock()

	if err := cb.store.Delete(); err != nil {
		return errors.WithMessage(err, "contactbook: failed to reset contacts")
	}
	cb.emails = nil
	return nil
}

// String returns the persisted form of the list.
func (cb *ContactBook) String() string {
	return strings.Join(cb.List(), separator)
}

func containsString(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}
