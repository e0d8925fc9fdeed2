package hash

import (
	"encoding"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"reflect"

	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

// DigestLengthBytes is the output size of Sum.
const DigestLengthBytes = 32

// domain written first into every hash state
const initDomain = "RSAMSG-BLAKE3"

// Hash is a domain separated blake3 hash. Every value written with WriteAny is
// framed as (<domain_size><domain><data_size><data>) so that concatenations of
// different inputs never collide.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash seeded with the package domain and optional initial data.
func New(initialData ...interface{}) *Hash {
	hash := &Hash{h: blake3.New()}
	_, _ = hash.h.WriteString(initDomain)
	_ = hash.WriteAny(initialData...)
	return hash
}

// Digest returns a reader for the current output of the hash.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns DigestLengthBytes bytes of the current hash state.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny writes values to the hash state.
//
// Supported types:
//
//   - []byte
//   - string
//   - *big.Int (signed, via GobEncode)
//   - encoding.BinaryMarshaler
func (hash *Hash) WriteAny(data ...interface{}) error {
	for _, d := range data {
		var domain string
		var b []byte
		switch t := d.(type) {
		case []byte:
			if t == nil {
				return errors.New("hash.WriteAny: nil []byte")
			}
			domain, b = "[]byte", t
		case string:
			domain, b = "string", []byte(t)
		case *big.Int:
			if t == nil {
				return errors.New("hash.WriteAny: nil *big.Int")
			}
			b, _ = t.GobEncode()
			domain = "big.Int"
		case encoding.BinaryMarshaler:
			name := reflect.TypeOf(t).String()
			raw, err := t.MarshalBinary()
			if err != nil {
				return errors.WithMessagef(err, "hash.WriteAny: %s", name)
			}
			domain, b = name, raw
		default:
			return errors.Errorf("hash.WriteAny: unsupported type %T", d)
		}
		hash.writeFramed(domain, b)
	}
	return nil
}

func (hash *Hash) writeFramed(domain string, data []byte) {
	var sizeBuf [8]byte

	_, _ = hash.h.WriteString("(")
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(domain)))
	_, _ = hash.h.Write(sizeBuf[:])
	_, _ = hash.h.WriteString(domain)
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(data)))
	_, _ = hash.h.Write(sizeBuf[:])
	_, _ = hash.h.Write(data)
	_, _ = hash.h.WriteString(")")
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}

// Fork clones this hash, and then writes some data.
func (hash *Hash) Fork(data ...interface{}) *Hash {
	newHash := hash.Clone()
	_ = newHash.WriteAny(data...)
	return newHash
}

// Fingerprint returns the hex encoded digest of the given values, used as a
// stable identifier of key material.
func Fingerprint(data ...interface{}) (string, error) {
	h := New()
	if err := h.WriteAny(data...); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum()), nil
}
