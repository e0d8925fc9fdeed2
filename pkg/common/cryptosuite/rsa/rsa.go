package rsa

type RSAKey interface {
	// Bytes returns the base64 text form of the public key.
	Bytes() ([]byte, error)

	// SKI returns the serialized key identifier.
	SKI() []byte

	// Fingerprint returns the hex encoded SKI.
	Fingerprint() string

	// Private returns true if the key is private.
	Private() bool

	// PublicKey returns the corresponding public key part of RSA Key.
	PublicKey() RSAKey

	// Encrypt returns the base64 ciphertext of plaintext.
	Encrypt(plaintext string) (string, error)

	// Decrypt returns the plaintext of a base64 ciphertext. It requires a private key.
	Decrypt(ciphertext string) (string, error)
}

type RSAKeyManager interface {
	// GenerateKey generates and stores a new RSA key pair of about bits bits.
	GenerateKey(bits int) (RSAKey, error)

	// ImportKey stores the base64 public key of keyID.
	ImportKey(keyID string, data []byte) (RSAKey, error)

	// GetKey returns the key stored under keyID.
	GetKey(keyID string) (RSAKey, error)

	// OwnKey returns the local key pair.
	OwnKey() (RSAKey, error)

	// Encrypt encrypts plaintext with the public key of keyID.
	Encrypt(keyID string, plaintext string) (string, error)

	// Decrypt decrypts ciphertext with the local private key.
	Decrypt(ciphertext string) (string, error)
}
