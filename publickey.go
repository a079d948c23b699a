package deso

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	PublicKeyLen = 33
	HashLen      = 32

	checksumLen = 4
	prefixLen   = 3
)

// ZeroPublicKey stands in for the native coin wherever a key is expected,
// and for "no app" on associations.
var ZeroPublicKey = make([]byte, PublicKeyLen)

// DecodePublicKey turns a base58check public key into its 33 byte
// compressed form. The key must carry a known network prefix, a valid
// checksum and be a point on secp256k1.
func DecodePublicKey(encoded string) (key []byte, network Network, err error) {
	raw, err := base58.Decode(encoded)
	if err != nil {
		err = errors.Wrapf(ErrInvalidFieldEncoding, "public key %q is not base58: %v", encoded, err)
		return
	}
	if len(raw) != prefixLen+PublicKeyLen+checksumLen {
		err = errors.Wrapf(ErrInvalidFieldEncoding, "public key %q decodes to %d bytes", encoded, len(raw))
		return
	}

	body, sum := raw[:len(raw)-checksumLen], raw[len(raw)-checksumLen:]
	if !bytes.Equal(checksum(body), sum) {
		err = errors.Wrapf(ErrInvalidFieldEncoding, "public key %q has a bad checksum", encoded)
		return
	}

	network, ok := networkForPrefix(body[:prefixLen])
	if !ok {
		err = errors.Wrapf(ErrInvalidFieldEncoding, "public key %q has unknown prefix %x", encoded, body[:prefixLen])
		return
	}

	key = bytes.Clone(body[prefixLen:])
	if _, err = btcec.ParsePubKey(key); err != nil {
		err = errors.Wrapf(ErrInvalidFieldEncoding, "public key %q is not on the curve: %v", encoded, err)
		key = nil
		return
	}
	return
}

// EncodePublicKey is the inverse of DecodePublicKey.
func EncodePublicKey(key []byte, network Network) (encoded string, err error) {
	params, err := network.Params()
	if err != nil {
		return
	}
	if len(key) != PublicKeyLen {
		err = errors.Wrapf(ErrInvalidFieldEncoding, "public key must be %d bytes, got %d", PublicKeyLen, len(key))
		return
	}
	body := append(params.PublicKeyPrefix[:], key...)
	encoded = base58.Encode(append(body, checksum(body)...))
	return
}

func checksum(body []byte) []byte {
	first := sha256.Sum256(body)
	second := sha256.Sum256(first[:])
	return second[:checksumLen]
}

// publicKeyField decodes a required public key field.
func publicKeyField(name, encoded string) (key []byte, err error) {
	if encoded == "" {
		err = missingField(name)
		return
	}
	key, _, err = DecodePublicKey(encoded)
	if err != nil {
		err = errors.Wrap(err, name)
	}
	return
}

// publicKeyOrZero decodes an optional public key field, mapping the empty
// string to ZeroPublicKey.
func publicKeyOrZero(name, encoded string) (key []byte, err error) {
	if encoded == "" {
		return bytes.Clone(ZeroPublicKey), nil
	}
	return publicKeyField(name, encoded)
}

// hashField decodes a required hex encoded 32 byte hash.
func hashField(name, encoded string) (hash []byte, err error) {
	if encoded == "" {
		err = missingField(name)
		return
	}
	hash, err = hex.DecodeString(strings.TrimPrefix(encoded, "0x"))
	if err != nil {
		err = invalidField(name, "not hex: %v", err)
		return
	}
	if len(hash) != HashLen {
		err = invalidField(name, "must be %d bytes, got %d", HashLen, len(hash))
		hash = nil
	}
	return
}

// hexField decodes a required hex value of any length.
func hexField(name, encoded string) (value []byte, err error) {
	if encoded == "" {
		err = missingField(name)
		return
	}
	value, err = hex.DecodeString(strings.TrimPrefix(encoded, "0x"))
	if err != nil {
		err = invalidField(name, "not hex: %v", err)
	}
	return
}
