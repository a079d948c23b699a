package deso

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUvarint_KnownEncodings(t *testing.T) {
	testCases := []struct {
		value   uint64
		encoded []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{math.MaxUint64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}

	for _, tc := range testCases {
		encoded := EncodeUvarint(tc.value)
		assert.Equal(t, tc.encoded, encoded, "encoding %d", tc.value)

		decoded, rest, err := DecodeUvarint(append(encoded, 0xee))
		require.Nil(t, err, "decoding %d", tc.value)
		assert.Equal(t, tc.value, decoded)
		assert.Equal(t, []byte{0xee}, rest, "bytes after the varint are handed back")
	}
}

func TestUvarint_RoundTripAcrossRange(t *testing.T) {
	for shift := 0; shift < 64; shift++ {
		for _, value := range []uint64{1<<shift - 1, 1 << shift, 1<<shift + 1} {
			decoded, rest, err := DecodeUvarint(EncodeUvarint(value))
			require.Nil(t, err)
			assert.Equal(t, value, decoded)
			assert.Empty(t, rest)
		}
	}
}

func TestUvarint_Truncated(t *testing.T) {
	for _, data := range [][]byte{{}, {0x80}, {0xff, 0xff}} {
		_, _, err := DecodeUvarint(data)
		assert.True(t, errors.Is(err, ErrTruncatedInput), "%x", data)
		assert.True(t, errors.Is(err, ErrMalformedVarint), "%x", data)
	}
}

func TestUvarint_Overflow(t *testing.T) {
	_, _, err := DecodeUvarint([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02})
	assert.True(t, errors.Is(err, ErrMalformedVarint))
	assert.False(t, errors.Is(err, ErrTruncatedInput))
}
