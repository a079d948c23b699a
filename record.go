package deso

import (
	"github.com/pkg/errors"
)

// Field binds one named struct member of R to the transcoder for its wire
// form.
type Field[R any] struct {
	Name  string
	read  func(record *R, data []byte) (rest []byte, err error)
	write func(record *R) (out []byte, err error)
}

// Bind ties a transcoder to the member returned by accessor.
func Bind[R, T any](name string, transcoder Transcoder[T], accessor func(record *R) *T) Field[R] {
	return Field[R]{
		Name: name,
		read: func(record *R, data []byte) (rest []byte, err error) {
			value, rest, err := transcoder.Read(data)
			if err != nil {
				return
			}
			*accessor(record) = value
			return
		},
		write: func(record *R) ([]byte, error) {
			return transcoder.Write(*accessor(record))
		},
	}
}

// Schema is the ordered field table for a record type. Field order is wire
// order.
type Schema[R any] struct {
	name   string
	fields []Field[R]
}

func NewSchema[R any](name string, fields ...Field[R]) *Schema[R] {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			panic("deso: duplicate field " + f.Name + " in schema " + name)
		}
		seen[f.Name] = true
	}
	return &Schema[R]{name: name, fields: fields}
}

func (s *Schema[R]) Name() string {
	return s.name
}

func (s *Schema[R]) FieldNames() (names []string) {
	for _, f := range s.fields {
		names = append(names, f.Name)
	}
	return
}

func (s *Schema[R]) Encode(record *R) (out []byte, err error) {
	for _, f := range s.fields {
		var part []byte
		part, err = f.write(record)
		if err != nil {
			err = errors.Wrapf(err, "encode %s.%s", s.name, f.Name)
			return
		}
		out = append(out, part...)
	}
	if out == nil {
		out = []byte{}
	}
	return
}

func (s *Schema[R]) Decode(record *R, data []byte) (rest []byte, err error) {
	rest = data
	for _, f := range s.fields {
		rest, err = f.read(record, rest)
		if err != nil {
			err = errors.Wrapf(err, "decode %s.%s", s.name, f.Name)
			return
		}
	}
	return
}

// DecodeExact decodes a record that must fill data completely.
func DecodeExact(record Record, data []byte) (err error) {
	rest, err := record.FromBytes(data)
	if err != nil {
		return
	}
	if len(rest) > 0 {
		err = errors.Wrapf(ErrTrailingBytes, "%d bytes left after record", len(rest))
	}
	return
}
