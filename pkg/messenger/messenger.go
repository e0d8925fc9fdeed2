package messenger

import (
	"context"
	"io"

	"github.com/apex/log"
	"github.com/mr-shifu/rsa-messenger/core/pool"
	cs_rsa "github.com/mr-shifu/rsa-messenger/pkg/common/cryptosuite/rsa"
	"github.com/mr-shifu/rsa-messenger/pkg/common/keystore"
	"github.com/mr-shifu/rsa-messenger/pkg/contactbook"
	swrsa "github.com/mr-shifu/rsa-messenger/pkg/cryptosuite/sw/rsa"
	keystoreimpl "github.com/mr-shifu/rsa-messenger/pkg/keystore"
	"github.com/mr-shifu/rsa-messenger/pkg/transport"
	"github.com/pkg/errors"
)

var (
	ErrNoLocalKey     = errors.New("messenger: no local key pair")
	ErrNoContactKey   = errors.New("messenger: no public key for this email")
	ErrUnknownContact = errors.New("messenger: email is not a contact")
	ErrReservedEmail  = errors.New("messenger: email collides with a local key name")
)

// KeyServer is the remote key/message store.
type KeyServer interface {
	PutKey(ctx context.Context, email, key string) error
	GetKey(ctx context.Context, email string) (*transport.Key, error)
	PutMessage(ctx context.Context, email, content string) error
	GetMessage(ctx context.Context, email string) (*transport.Message, error)
}

// Messenger implements the user commands on top of a key server and a
// local keystore.
type Messenger struct {
	server   KeyServer
	store    keystore.Keystore
	keys     cs_rsa.RSAKeyManager
	contacts *contactbook.ContactBook
}

// New loads the contact book from store. pl runs key generation; nil means a
// default pool.
func New(server KeyServer, store keystore.Keystore, pl *pool.Pool) (*Messenger, error) {
	contacts, err := contactbook.Load(store)
	if err != nil {
		return nil, err
	}
	return &Messenger{
		server:   server,
		store:    store,
		keys:     swrsa.NewRSAKeyManager(store, &swrsa.Config{Pool: pl}),
		contacts: contacts,
	}, nil
}

// KeyGen creates a new key pair of about bits bits. The contact list is
// cleared since its entries received the previous public key.
func (m *Messenger) KeyGen(bits int) (cs_rsa.RSAKey, error) {
	key, err := m.keys.GenerateKey(bits)
	if err != nil {
		return nil, err
	}
	if err := m.contacts.Reset(); err != nil {
		return nil, err
	}
	log.WithField("fingerprint", key.Fingerprint()).Info("key pair generated")
	return key, nil
}

// SendKey uploads the local public key under email and remembers email as a
// contact whose messages may be read.
func (m *Messenger) SendKey(ctx context.Context, email string) error {
	key, err := m.ownKey()
	if err != nil {
		return err
	}
	pub, err := key.Bytes()
	if err != nil {
		return err
	}
	if err := m.server.PutKey(ctx, email, string(pub)); err != nil {
		return err
	}
	if err := m.contacts.Add(email); err != nil {
		return err
	}
	log.WithField("email", email).Info("key saved")
	return nil
}

// GetKey downloads and stores the public key of email.
func (m *Messenger) GetKey(ctx context.Context, email string) (cs_rsa.RSAKey, error) {
	if err := checkCounterpart(email); err != nil {
		return nil, err
	}
	remote, err := m.server.GetKey(ctx, email)
	if err != nil {
		return nil, errors.WithMessagef(err, "messenger: key of %s", email)
	}
	key, err := m.keys.ImportKey(email, []byte(remote.Key))
	if err != nil {
		return nil, errors.WithMessagef(err, "messenger: key of %s", email)
	}
	log.WithFields(log.Fields{"email": email, "fingerprint": key.Fingerprint()}).Info("key stored")
	return key, nil
}

// SendMsg encrypts text for email with its stored public key and uploads it.
func (m *Messenger) SendMsg(ctx context.Context, email, text string) error {
	if err := checkCounterpart(email); err != nil {
		return err
	}
	key, err := m.keys.GetKey(email)
	if errors.Is(err, keystoreimpl.ErrKeyNotFound) {
		return errors.Wrapf(ErrNoContactKey, "%s", email)
	}
	if err != nil {
		return err
	}

	ciphertext, err := key.Encrypt(text)
	if err != nil {
		return err
	}
	if err := m.server.PutMessage(ctx, email, ciphertext); err != nil {
		return err
	}
	log.WithField("email", email).Info("message written")
	return nil
}

// GetMsg downloads and decrypts the message stored for email. Only contacts'
// messages can be read, as only they were given our public key.
func (m *Messenger) GetMsg(ctx context.Context, email string) (string, error) {
	if !m.contacts.Contains(email) {
		return "", errors.Wrapf(ErrUnknownContact, "%s", email)
	}
	key, err := m.ownKey()
	if err != nil {
		return "", err
	}

	msg, err := m.server.GetMessage(ctx, email)
	if err != nil {
		return "", errors.WithMessagef(err, "messenger: message of %s", email)
	}
	return key.Decrypt(msg.Content)
}

// Fingerprint returns the fingerprint of the public key stored for email, or of
// the local key when email is empty.
func (m *Messenger) Fingerprint(email string) (string, error) {
	if email == "" {
		key, err := m.ownKey()
		if err != nil {
			return "", err
		}
		return key.Fingerprint(), nil
	}
	if err := checkCounterpart(email); err != nil {
		return "", err
	}
	key, err := m.keys.GetKey(email)
	if errors.Is(err, keystoreimpl.ErrKeyNotFound) {
		return "", errors.Wrapf(ErrNoContactKey, "%s", email)
	}
	if err != nil {
		return "", err
	}
	return key.Fingerprint(), nil
}

// Contacts returns the emails whose messages can be read.
func (m *Messenger) Contacts() []string {
	return m.contacts.List()
}

// Backup writes all local keys and the contact list to w.
func (m *Messenger) Backup(w io.Writer) error {
	return m.store.Export(w)
}

// Restore imports a backup written by Backup and reloads the contact list.
func (m *Messenger) Restore(r io.Reader) error {
	if err := m.store.Restore(r); err != nil {
		return err
	}
	contacts, err := contactbook.Load(m.store)
	if err != nil {
		return err
	}
	m.contacts = contacts
	return nil
}

func (m *Messenger) ownKey() (cs_rsa.RSAKey, error) {
	key, err := m.keys.OwnKey()
	if errors.Is(err, keystoreimpl.ErrKeyNotFound) {
		return nil, ErrNoLocalKey
	}
	return key, err
}

// checkCounterpart rejects emails that would address the local key pair or
// the contact list in the keystore.
func checkCounterpart(email string) error {
	if swrsa.IsReservedKeyID(email) {
		return errors.Wrapf(ErrReservedEmail, "%q", email)
	}
	return nil
}
