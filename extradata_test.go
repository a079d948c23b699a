package deso

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtraData_Deterministic(t *testing.T) {
	first := ExtraDataMap{}
	second := ExtraDataMap{}
	keys := []string{"zeta", "alpha", "Mid", "beta", "10", "9"}
	for i, k := range keys {
		first[k] = []byte{byte(i)}
	}
	for i := len(keys) - 1; i >= 0; i-- {
		second[keys[i]] = []byte{byte(i)}
	}

	a, err := first.ToBytes()
	require.Nil(t, err)
	for i := 0; i < 20; i++ {
		b, err := second.ToBytes()
		require.Nil(t, err)
		assert.Equal(t, a, b)
	}

	assert.Equal(t, []string{"10", "9", "Mid", "alpha", "beta", "zeta"}, first.Keys())
}

func TestExtraData_RoundTrip(t *testing.T) {
	m := ExtraDataMap{"k": []byte("v"), "empty": []byte{}}
	raw, err := m.ToBytes()
	require.Nil(t, err)

	var decoded ExtraDataMap
	require.Nil(t, DecodeExact(&decoded, raw))
	assert.Equal(t, m, decoded)

	var empty ExtraDataMap
	require.Nil(t, DecodeExact(&empty, []byte{0x00}))
	assert.Nil(t, empty)
}

func TestExtraData_RepeatedKey(t *testing.T) {
	raw := []byte{0x02, 1, 'k', 1, 'a', 1, 'k', 1, 'b'}
	var m ExtraDataMap
	err := DecodeExact(&m, raw)
	assert.True(t, errors.Is(err, ErrInvalidFieldEncoding))
}

func TestExtraData_Merge(t *testing.T) {
	m := ExtraDataMap{"a": []byte("1")}
	require.Nil(t, m.Merge(ExtraDataFromStrings(map[string]string{"b": "2"})))
	assert.Equal(t, ExtraDataMap{"a": []byte("1"), "b": []byte("2")}, m)

	err := m.Merge(ExtraDataMap{"a": []byte("x"), "c": []byte("3")})
	assert.True(t, errors.Is(err, ErrInvalidFieldEncoding))
	assert.NotContains(t, m, "c", "a failed merge leaves the map untouched")
}

func TestRoyaltyMap(t *testing.T) {
	alice := newTestKey(t, 0x0a, NetworkTestNet)
	bob := newTestKey(t, 0x0b, NetworkTestNet)

	royalties := RoyaltyMap{alice.base58: 100, bob.base58: 250}
	assert.Equal(t, uint64(350), royalties.Total())

	raw, err := royalties.Encode()
	require.Nil(t, err)
	assert.Equal(t, 1+PublicKeyLen+1+PublicKeyLen+2, len(raw), "count, then each key and its basis points")

	again, err := RoyaltyMap{bob.base58: 250, alice.base58: 100}.Encode()
	require.Nil(t, err)
	assert.Equal(t, raw, again)

	decoded, err := DecodeRoyaltyMap(raw, NetworkTestNet)
	require.Nil(t, err)
	assert.Equal(t, royalties, decoded)

	_, err = DecodeRoyaltyMap(raw[:len(raw)-1], NetworkTestNet)
	assert.True(t, errors.Is(err, ErrTruncatedInput))

	_, err = DecodeRoyaltyMap(append(raw, 0x00), NetworkTestNet)
	assert.True(t, errors.Is(err, ErrTrailingBytes))

	_, err = RoyaltyMap{"nope": 1}.Encode()
	assert.True(t, errors.Is(err, ErrInvalidFieldEncoding))
}
