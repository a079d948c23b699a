package deso

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"
)

type testKey struct {
	priv    *btcec.PrivateKey
	pub     []byte
	base58  string
	network Network
}

// newTestKey derives a deterministic key from seed.
func newTestKey(t *testing.T, seed byte, network Network) testKey {
	t.Helper()

	priv, pub := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{seed}, 32))
	compressed := pub.SerializeCompressed()

	encoded, err := EncodePublicKey(compressed, network)
	require.Nil(t, err)

	return testKey{priv: priv, pub: compressed, base58: encoded, network: network}
}

func hash32(b byte) []byte {
	return bytes.Repeat([]byte{b}, HashLen)
}
