package rsa

import (
	"encoding/base64"
	"encoding/binary"
	"math"

	"github.com/mr-shifu/rsa-messenger/core/math/arith"
	"github.com/pkg/errors"
)

// lengthSize is the size of the length prefix in front of each value.
const lengthSize = 4

// MarshalBinary encodes the key as
//
//	| Exponent length | Exponent | Modulus length | Modulus |
//
// Lengths are 4-byte little-endian unsigned integers, values are minimal
// big-endian two's complement byte arrays. Negative values are rejected, as
// UnmarshalBinary would not accept them.
func (k *Key) MarshalBinary() ([]byte, error) {
	if k == nil || k.Exponent == nil || k.Modulus == nil {
		return nil, ErrInvalidKey
	}
	if k.Exponent.Sign() < 0 || k.Modulus.Sign() < 0 {
		return nil, errors.Wrap(ErrInvalidKey, "negative key value")
	}
	eb := arith.SignedBytes(k.Exponent)
	nb := arith.SignedBytes(k.Modulus)

	buf := make([]byte, 0, 2*lengthSize+len(eb)+len(nb))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(eb)))
	buf = append(buf, eb...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(nb)))
	buf = append(buf, nb...)
	return buf, nil
}

// UnmarshalBinary decodes a key produced by MarshalBinary.
func (k *Key) UnmarshalBinary(data []byte) error {
	eb, rest, err := readField(data, "exponent")
	if err != nil {
		return err
	}
	nb, rest, err := readField(rest, "modulus")
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return errors.Wrapf(ErrCodec, "%d trailing bytes", len(rest))
	}

	e := arith.FromSignedBytes(eb)
	n := arith.FromSignedBytes(nb)
	if e.Sign() < 0 || n.Sign() < 0 {
		return errors.Wrap(ErrCodec, "negative key value")
	}
	k.Exponent, k.Modulus = e, n
	return nil
}

func readField(data []byte, name string) ([]byte, []byte, error) {
	if len(data) < lengthSize {
		return nil, nil, errors.Wrapf(ErrCodec, "truncated %s length", name)
	}
	l := binary.LittleEndian.Uint32(data)
	data = data[lengthSize:]
	if l > math.MaxInt32 || uint64(l) > uint64(len(data)) {
		return nil, nil, errors.Wrapf(ErrCodec, "%s length %d exceeds remaining %d bytes", name, l, len(data))
	}
	return data[:l], data[l:], nil
}

// Encode returns the base64 text form of the key.
func Encode(k *Key) (string, error) {
	data, err := k.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode parses the base64 text form of a key.
func Decode(text string) (*Key, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, errors.Wrap(ErrCodec, err.Error())
	}
	k := new(Key)
	if err := k.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return k, nil
}

// DecodePublicKey parses the base64 text form of a public key.
func DecodePublicKey(text string) (*PublicKey, error) {
	k, err := Decode(text)
	if err != nil {
		return nil, err
	}
	return &PublicKey{*k}, nil
}

// DecodePrivateKey parses the base64 text form of a private key.
func DecodePrivateKey(text string) (*PrivateKey, error) {
	k, err := Decode(text)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{*k}, nil
}
