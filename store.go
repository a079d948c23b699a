package deso

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// SessionStore is the persistent key/value space the session lives in.
type SessionStore interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
}

type InMemorySessionStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ SessionStore = &InMemorySessionStore{}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{entries: make(map[string][]byte)}
}

func (s *InMemorySessionStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	return bytes.Clone(value), ok, nil
}

func (s *InMemorySessionStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = bytes.Clone(value)
	return nil
}

func (s *InMemorySessionStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// FileSessionStore keeps every entry in a single CBOR file, rewritten on
// each change.
type FileSessionStore struct {
	mu   sync.Mutex
	path string
}

var _ SessionStore = &FileSessionStore{}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (f *FileSessionStore) Get(key string) (value []byte, ok bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return
	}
	value, ok = entries[key]
	return
}

func (f *FileSessionStore) Set(key string, value []byte) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return
	}
	entries[key] = bytes.Clone(value)
	return f.save(entries)
}

func (f *FileSessionStore) Delete(key string) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return
	}
	if _, ok := entries[key]; !ok {
		return
	}
	delete(entries, key)
	return f.save(entries)
}

func (f *FileSessionStore) load() (entries map[string][]byte, err error) {
	entries = make(map[string][]byte)

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		err = errors.Wrap(err, "unable to read session file")
		return
	}

	if err = cbor.Unmarshal(raw, &entries); err != nil {
		err = errors.Wrap(err, "unable to unmarshal session file")
	}
	return
}

func (f *FileSessionStore) save(entries map[string][]byte) (err error) {
	raw, err := sessionEncoding.Marshal(entries)
	if err != nil {
		err = errors.Wrap(err, "unable to marshal session entries")
		return
	}

	if err = os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		err = errors.Wrap(err, "unable to create session directory")
		return
	}

	tmp := f.path + ".tmp"
	if err = os.WriteFile(tmp, raw, 0o600); err != nil {
		err = errors.Wrap(err, "unable to write session file")
		return
	}
	if err = os.Rename(tmp, f.path); err != nil {
		err = errors.Wrap(err, "unable to replace session file")
		return
	}

	log.Debug().Msgf("wrote %d session entries to %s", len(entries), f.path)

	return
}
