package deso

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// MaxUvarintLen is the longest encoding of a uint64.
const MaxUvarintLen = binary.MaxVarintLen64

// EncodeUvarint encodes n as a little-endian base-128 varint. Each byte
// carries 7 payload bits; the high bit means more bytes follow.
func EncodeUvarint(n uint64) []byte {
	return binary.AppendUvarint(make([]byte, 0, MaxUvarintLen), n)
}

// AppendUvarint is EncodeUvarint appending onto dst.
func AppendUvarint(dst []byte, n uint64) []byte {
	return binary.AppendUvarint(dst, n)
}

// DecodeUvarint reads one varint from the front of data and returns the
// value and the bytes that follow it.
func DecodeUvarint(data []byte) (n uint64, rest []byte, err error) {
	n, read := binary.Uvarint(data)
	switch {
	case read == 0:
		err = errors.WithStack(&truncatedVarint{have: len(data)})
		return
	case read < 0:
		err = errors.Wrapf(ErrMalformedVarint, "value overflows 64 bits after %d bytes", -read)
		return
	}
	rest = data[read:]
	return
}
