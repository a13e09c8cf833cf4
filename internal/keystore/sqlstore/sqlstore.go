// Package sqlstore implements linkframe.Keystore backed by a SQLite
// database, for deployments that rotate keys at runtime without
// restarting the process (unlike filestore's load-once manifest).
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/barnettlynn/linkguard/pkg/linkframe"
)

const schema = `
CREATE TABLE IF NOT EXISTS linkframe_keys (
	key_id INTEGER PRIMARY KEY,
	key_material BLOB NOT NULL
);
`

// Store is a linkframe.Keystore backed by a SQLite table. database/sql
// connection pools are already safe for concurrent use, satisfying the
// Keystore contract's concurrent-Lookup requirement without an
// additional lock here.
type Store struct {
	db *sql.DB
}

var _ linkframe.Keystore = (*Store)(nil)

// Open opens (creating if necessary) the SQLite database at path and
// ensures the key table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or replaces the key material for keyID.
func (s *Store) Put(keyID uint32, key []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO linkframe_keys (key_id, key_material) VALUES (?, ?)
		 ON CONFLICT(key_id) DO UPDATE SET key_material = excluded.key_material`,
		keyID, key,
	)
	if err != nil {
		return fmt.Errorf("put key %d: %w", keyID, err)
	}
	return nil
}

// Delete removes the key material for keyID, if present.
func (s *Store) Delete(keyID uint32) error {
	_, err := s.db.Exec(`DELETE FROM linkframe_keys WHERE key_id = ?`, keyID)
	if err != nil {
		return fmt.Errorf("delete key %d: %w", keyID, err)
	}
	return nil
}

// Lookup implements linkframe.Keystore.
func (s *Store) Lookup(keyID uint32, out []byte) (int, error) {
	var key []byte
	err := s.db.QueryRow(`SELECT key_material FROM linkframe_keys WHERE key_id = ?`, keyID).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, linkframe.ErrKeyNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lookup key %d: %w", keyID, err)
	}
	if len(out) < len(key) {
		return 0, linkframe.ErrShortBuffer
	}
	return copy(out, key), nil
}
