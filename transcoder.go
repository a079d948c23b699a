package deso

import (
	"bytes"

	"github.com/pkg/errors"
)

// Transcoder is the read/write pair for one logical field value. Read
// consumes from the front of data and returns what it did not use.
type Transcoder[T any] struct {
	Read  func(data []byte) (value T, rest []byte, err error)
	Write func(value T) (out []byte, err error)
}

// Record is anything with a wire form. FromBytes fills the receiver and
// returns the bytes left over for the enclosing record.
type Record interface {
	ToBytes() ([]byte, error)
	FromBytes(data []byte) (rest []byte, err error)
}

// Variant is a record that can sit inside an Enum.
type Variant interface {
	Record
	VariantTag() uint64
}

type recordPtr[R any] interface {
	*R
	Record
}

var Uvarint64 = Transcoder[uint64]{
	Read: DecodeUvarint,
	Write: func(n uint64) ([]byte, error) {
		return EncodeUvarint(n), nil
	},
}

var Uint8 = Transcoder[uint8]{
	Read: func(data []byte) (v uint8, rest []byte, err error) {
		if len(data) < 1 {
			err = errors.Wrap(ErrTruncatedInput, "uint8 needs 1 byte, have 0")
			return
		}
		return data[0], data[1:], nil
	},
	Write: func(v uint8) ([]byte, error) {
		return []byte{v}, nil
	},
}

var Bool = Transcoder[bool]{
	Read: func(data []byte) (v bool, rest []byte, err error) {
		if len(data) < 1 {
			err = errors.Wrap(ErrTruncatedInput, "bool needs 1 byte, have 0")
			return
		}
		return data[0] != 0, data[1:], nil
	},
	Write: func(v bool) ([]byte, error) {
		if v {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	},
}

// FixedBuffer reads and writes exactly size raw bytes.
func FixedBuffer(size int) Transcoder[[]byte] {
	return Transcoder[[]byte]{
		Read: func(data []byte) (v []byte, rest []byte, err error) {
			if len(data) < size {
				err = errors.Wrapf(ErrTruncatedInput, "fixed buffer needs %d bytes, have %d", size, len(data))
				return
			}
			return bytes.Clone(data[:size]), data[size:], nil
		},
		Write: func(v []byte) (out []byte, err error) {
			if len(v) != size {
				err = errors.Wrapf(ErrInvalidFieldEncoding, "fixed buffer expects %d bytes, got %d", size, len(v))
				return
			}
			return bytes.Clone(v), nil
		},
	}
}

// VarBuffer is a uvarint length prefix followed by that many bytes.
var VarBuffer = Transcoder[[]byte]{
	Read: func(data []byte) (v []byte, rest []byte, err error) {
		size, rest, err := DecodeUvarint(data)
		if err != nil {
			return
		}
		if size > uint64(len(rest)) {
			err = errors.Wrapf(ErrTruncatedInput, "var buffer declares %d bytes, have %d", size, len(rest))
			return
		}
		v = make([]byte, size)
		copy(v, rest[:size])
		rest = rest[size:]
		return
	},
	Write: func(v []byte) ([]byte, error) {
		out := AppendUvarint(make([]byte, 0, len(v)+MaxUvarintLen), uint64(len(v)))
		return append(out, v...), nil
	},
}

// Optional writes nothing for nil. On read an empty buffer is taken to mean
// the value is absent, which only works for trailing fields.
func Optional[T any](inner Transcoder[T]) Transcoder[*T] {
	return Transcoder[*T]{
		Read: func(data []byte) (v *T, rest []byte, err error) {
			if len(data) == 0 {
				return nil, data, nil
			}
			value, rest, err := inner.Read(data)
			if err != nil {
				return
			}
			return &value, rest, nil
		},
		Write: func(v *T) ([]byte, error) {
			if v == nil {
				return []byte{}, nil
			}
			return inner.Write(*v)
		},
	}
}

// Flagged prefixes the value with a presence byte, so absence is explicit
// and the field can appear anywhere in a record.
func Flagged[T any](inner Transcoder[T]) Transcoder[*T] {
	return Transcoder[*T]{
		Read: func(data []byte) (v *T, rest []byte, err error) {
			present, rest, err := Bool.Read(data)
			if err != nil || !present {
				return
			}
			value, rest, err := inner.Read(rest)
			if err != nil {
				return
			}
			return &value, rest, nil
		},
		Write: func(v *T) ([]byte, error) {
			if v == nil {
				return []byte{0}, nil
			}
			out, err := inner.Write(*v)
			if err != nil {
				return nil, err
			}
			return append([]byte{1}, out...), nil
		},
	}
}

// RecordOf nests a record. Whatever the record leaves unread is handed on.
func RecordOf[R any, P recordPtr[R]]() Transcoder[R] {
	return Transcoder[R]{
		Read: func(data []byte) (v R, rest []byte, err error) {
			rest, err = P(&v).FromBytes(data)
			return
		},
		Write: func(v R) ([]byte, error) {
			return P(&v).ToBytes()
		},
	}
}

// ArrayOf is a uvarint count followed by that many records back to back.
func ArrayOf[R any, P recordPtr[R]]() Transcoder[[]R] {
	return Transcoder[[]R]{
		Read: func(data []byte) (v []R, rest []byte, err error) {
			count, rest, err := DecodeUvarint(data)
			if err != nil {
				return
			}
			if count > uint64(len(rest)) {
				// every record is at least one byte
				err = errors.Wrapf(ErrTruncatedInput, "array declares %d items, have %d bytes", count, len(rest))
				return
			}
			v = make([]R, count)
			for i := range v {
				rest, err = P(&v[i]).FromBytes(rest)
				if err != nil {
					err = errors.Wrapf(err, "item %d", i)
					return
				}
			}
			return
		},
		Write: func(v []R) ([]byte, error) {
			out := EncodeUvarint(uint64(len(v)))
			for i := range v {
				item, err := P(&v[i]).ToBytes()
				if err != nil {
					return nil, errors.Wrapf(err, "item %d", i)
				}
				out = append(out, item...)
			}
			return out, nil
		},
	}
}

// ChunkBuffer is a uvarint count followed by count chunks of width bytes.
func ChunkBuffer(width int) Transcoder[[][]byte] {
	return Transcoder[[][]byte]{
		Read: func(data []byte) (v [][]byte, rest []byte, err error) {
			count, rest, err := DecodeUvarint(data)
			if err != nil {
				return
			}
			if count > uint64(len(rest)/width) {
				err = errors.Wrapf(ErrTruncatedInput, "chunk buffer declares %d x %d bytes, have %d", count, width, len(rest))
				return
			}
			v = make([][]byte, count)
			for i := range v {
				v[i] = bytes.Clone(rest[:width])
				rest = rest[width:]
			}
			return
		},
		Write: func(v [][]byte) ([]byte, error) {
			out := EncodeUvarint(uint64(len(v)))
			for i, chunk := range v {
				if len(chunk) != width {
					return nil, errors.Wrapf(ErrInvalidFieldEncoding, "chunk %d is %d bytes, expected %d", i, len(chunk), width)
				}
				out = append(out, chunk...)
			}
			return out, nil
		},
	}
}

// Enum writes a uvarint tag, a uvarint payload length and the payload. The
// payload must decode to exactly its declared length.
func Enum(variants map[uint64]func() Variant) Transcoder[Variant] {
	return Transcoder[Variant]{
		Read: func(data []byte) (v Variant, rest []byte, err error) {
			tag, rest, err := DecodeUvarint(data)
			if err != nil {
				return
			}
			size, rest, err := DecodeUvarint(rest)
			if err != nil {
				return
			}
			newVariant, ok := variants[tag]
			if !ok {
				err = errors.Wrapf(ErrUnknownVariant, "tag %d", tag)
				return
			}
			if size > uint64(len(rest)) {
				err = errors.Wrapf(ErrTruncatedInput, "variant %d declares %d bytes, have %d", tag, size, len(rest))
				return
			}
			v = newVariant()
			leftover, err := v.FromBytes(rest[:size])
			if err != nil {
				err = errors.Wrapf(err, "variant %d", tag)
				return
			}
			if len(leftover) > 0 {
				err = errors.Wrapf(ErrTrailingBytes, "variant %d left %d of %d bytes unread", tag, len(leftover), size)
				return
			}
			rest = rest[size:]
			return
		},
		Write: func(v Variant) (out []byte, err error) {
			if v == nil {
				err = errors.Wrap(ErrInvalidFieldEncoding, "enum value is nil")
				return
			}
			tag := v.VariantTag()
			if _, ok := variants[tag]; !ok {
				err = errors.Wrapf(ErrUnknownVariant, "tag %d", tag)
				return
			}
			payload, err := v.ToBytes()
			if err != nil {
				return
			}
			out = AppendUvarint(nil, tag)
			out = AppendUvarint(out, uint64(len(payload)))
			out = append(out, payload...)
			return
		},
	}
}
