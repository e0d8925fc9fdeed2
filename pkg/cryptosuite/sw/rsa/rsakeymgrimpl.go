package rsa

import (
	"github.com/apex/log"
	"github.com/mr-shifu/rsa-messenger/core/pool"
	rsacore "github.com/mr-shifu/rsa-messenger/core/rsa"
	cs_rsa "github.com/mr-shifu/rsa-messenger/pkg/common/cryptosuite/rsa"
	"github.com/mr-shifu/rsa-messenger/pkg/common/keystore"
	"github.com/mr-shifu/rsa-messenger/pkg/vault"
	"github.com/pkg/errors"
)

// Keystore ids of the local key pair.
const (
	PublicKeyID  = vault.PublicKeyID
	PrivateKeyID = vault.PrivateKeyID
)

var ErrReservedKeyID = errors.New("rsa: key id is reserved for local data")

// IsReservedKeyID reports whether keyID names local data rather than a
// counterpart's public key.
func IsReservedKeyID(keyID string) bool {
	switch keyID {
	case vault.PublicKeyID, vault.PrivateKeyID, vault.ContactsID:
		return true
	}
	return false
}

type Config struct {
	// Pool runs the prime searches of GenerateKey.
	Pool *pool.Pool
}

type RSAKeyManager struct {
	keystore keystore.Keystore
	cfg      *Config
}

func NewRSAKeyManager(store keystore.Keystore, cfg *Config) *RSAKeyManager {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Pool == nil {
		cfg.Pool = pool.NewPool(0)
	}
	return &RSAKeyManager{
		keystore: store,
		cfg:      cfg,
	}
}

// GenerateKey creates a new key pair and replaces the stored one.
func (mgr *RSAKeyManager) GenerateKey(bits int) (cs_rsa.RSAKey, error) {
	pub, priv, err := rsacore.GenerateKeyPair(mgr.cfg.Pool, bits)
	if err != nil {
		return RSAKey{}, err
	}
	key := NewRSAKey(pub, priv)

	pubText, err := key.Bytes()
	if err != nil {
		return RSAKey{}, err
	}
	privText, err := key.PrivateBytes()
	if err != nil {
		return RSAKey{}, err
	}

	// private first: a public key without its private half is unusable
	if err := mgr.keystore.Import(PrivateKeyID, privText); err != nil {
		return RSAKey{}, errors.WithMessage(err, "rsa: failed to store private key")
	}
	if err := mgr.keystore.Import(PublicKeyID, pubText); err != nil {
		return RSAKey{}, errors.WithMessage(err, "rsa: failed to store public key")
	}

	log.WithFields(log.Fields{
		"bits":        pub.Modulus.BitLen(),
		"fingerprint": key.Fingerprint(),
	}).Debug("generated key pair")
	return key, nil
}

// ImportKey stores the public key data (base64 text) under keyID.
func (mgr *RSAKeyManager) ImportKey(keyID string, data []byte) (cs_rsa.RSAKey, error) {
	if IsReservedKeyID(keyID) {
		return RSAKey{}, errors.Wrapf(ErrReservedKeyID, "%q", keyID)
	}

	// decode the key
	k, err := fromBytes(data)
	if err != nil {
		return RSAKey{}, err
	}

	// import the encoded key to the keystore with keyID
	if err := mgr.keystore.Import(keyID, data); err != nil {
		return RSAKey{}, err
	}

	log.WithFields(log.Fields{"id": keyID, "fingerprint": k.Fingerprint()}).Debug("imported public key")
	return k, nil
}

// GetKey returns the key stored under keyID. PrivateKeyID yields the local
// key pair, PublicKeyID its public half and any other unreserved id a
// counterpart's public key.
func (mgr *RSAKeyManager) GetKey(keyID string) (cs_rsa.RSAKey, error) {
	switch keyID {
	case PrivateKeyID:
		return mgr.OwnKey()
	case vault.ContactsID:
		return RSAKey{}, errors.Wrapf(ErrReservedKeyID, "%q", keyID)
	}

	data, err := mgr.keystore.Get(keyID)
	if err != nil {
		return RSAKey{}, err
	}
	return fromBytes(data)
}

// OwnKey returns the local key pair.
func (mgr *RSAKeyManager) OwnKey() (cs_rsa.RSAKey, error) {
	privText, err := mgr.keystore.Get(PrivateKeyID)
	if err != nil {
		return RSAKey{}, err
	}
	pubText, err := mgr.keystore.Get(PublicKeyID)
	if err != nil {
		return RSAKey{}, err
	}

	priv, err := rsacore.DecodePrivateKey(string(privText))
	if err != nil {
		return RSAKey{}, errors.WithMessage(err, "rsa: stored private key")
	}
	pub, err := rsacore.DecodePublicKey(string(pubText))
	if err != nil {
		return RSAKey{}, errors.WithMessage(err, "rsa: stored public key")
	}
	if pub.Modulus.Cmp(priv.Modulus) != 0 {
		return RSAKey{}, errors.Wrap(rsacore.ErrInvalidKey, "stored keys do not share a modulus")
	}
	return NewRSAKey(pub, priv), nil
}

func (mgr *RSAKeyManager) Encrypt(keyID string, plaintext string) (string, error) {
	k, err := mgr.GetKey(keyID)
	if err != nil {
		return "", err
	}
	return k.Encrypt(plaintext)
}

func (mgr *RSAKeyManager) Decrypt(ciphertext string) (string, error) {
	k, err := mgr.OwnKey()
	if err != nil {
		return "", err
	}
	return k.Decrypt(ciphertext)
}
