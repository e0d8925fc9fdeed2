package rsa

import (
	"encoding/hex"
	"errors"

	rsacore "github.com/mr-shifu/rsa-messenger/core/rsa"
	cs_rsa "github.com/mr-shifu/rsa-messenger/pkg/common/cryptosuite/rsa"
	"github.com/mr-shifu/rsa-messenger/pkg/hash"
)

var (
	ErrNotPrivate = errors.New("rsa: key has no private part")
)

type RSAKey struct {
	public  *rsacore.PublicKey
	private *rsacore.PrivateKey
}

// NewRSAKey wraps a key pair. private may be nil.
func NewRSAKey(public *rsacore.PublicKey, private *rsacore.PrivateKey) RSAKey {
	return RSAKey{public: public, private: private}
}

func (key RSAKey) Bytes() ([]byte, error) {
	text, err := rsacore.Encode(&key.public.Key)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// PrivateBytes returns the base64 text form of the private key.
func (key RSAKey) PrivateBytes() ([]byte, error) {
	if !key.Private() {
		return nil, ErrNotPrivate
	}
	text, err := rsacore.Encode(&key.private.Key)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func (key RSAKey) SKI() []byte {
	h := hash.New()
	if err := h.WriteAny(key.public.Exponent, key.public.Modulus); err != nil {
		return nil
	}
	return h.Sum()
}

func (key RSAKey) Fingerprint() string {
	return hex.EncodeToString(key.SKI())
}

func (key RSAKey) Private() bool {
	return key.private != nil
}

func (key RSAKey) PublicKey() cs_rsa.RSAKey {
	return RSAKey{public: key.public}
}

// PublicKeyRaw returns the (e, n) pair.
func (key RSAKey) PublicKeyRaw() *rsacore.PublicKey {
	return key.public
}

func (key RSAKey) Encrypt(plaintext string) (string, error) {
	return rsacore.Encrypt(key.public, plaintext)
}

func (key RSAKey) Decrypt(ciphertext string) (string, error) {
	if !key.Private() {
		return "", ErrNotPrivate
	}
	return rsacore.Decrypt(key.private, ciphertext)
}

func fromBytes(data []byte) (RSAKey, error) {
	pub, err := rsacore.DecodePublicKey(string(data))
	if err != nil {
		return RSAKey{}, err
	}
	return RSAKey{public: pub}, nil
}
