package deso

import (
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type SqliteSessionStore struct {
	db *sql.DB
	mu sync.Mutex
}

var _ SessionStore = &SqliteSessionStore{}

func NewSqliteSessionStore(path string) (store *SqliteSessionStore, err error) {
	log.Info().Msgf("opening sqlite session store at: '%s'", path)

	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		err = errors.Wrap(err, "failed to open database")
		return
	}

	if err = sqldb.Ping(); err != nil {
		_ = sqldb.Close()
		err = errors.Wrap(err, "failed to ping database")
		return
	}

	store = &SqliteSessionStore{db: sqldb}
	if err = store.initTables(); err != nil {
		_ = sqldb.Close()
		store = nil
		err = errors.Wrap(err, "failed to init tables")
		return
	}

	return
}

func (s *SqliteSessionStore) initTables() (err error) {
	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS session (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return errors.WithStack(err)
}

func (s *SqliteSessionStore) Get(key string) (value []byte, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.WithStack(err)
	}
	return value, true, nil
}

func (s *SqliteSessionStore) Set(key string, value []byte) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value == nil {
		value = []byte{}
	}

	_, err = s.db.Exec(`
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	return errors.WithStack(err)
}

func (s *SqliteSessionStore) Delete(key string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec("DELETE FROM session WHERE key = ?", key)
	return errors.WithStack(err)
}

func (s *SqliteSessionStore) Close() error {
	return errors.WithStack(s.db.Close())
}
