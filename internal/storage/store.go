// ABOUTME: Badger-backed store lifecycle and default data paths.
// ABOUTME: Opens the record store with the fitlog schema and runs migrations.
package storage

import (
	"os"
	"path/filepath"

	"github.com/harperreed/fitlog/internal/kv"
)

// Store implements Repository on top of the kv record store.
type Store struct {
	kv *kv.Store
}

// Open opens or creates the store rooted at dir and applies any pending
// schema migrations.
func Open(dir string) (*Store, error) {
	kvs, err := kv.Open(dir, tables())
	if err != nil {
		return nil, err
	}
	if err := migrate(kvs); err != nil {
		_ = kvs.Close()
		return nil, err
	}
	return &Store{kv: kvs}, nil
}

// OpenDefault opens the store at the default XDG data path.
func OpenDefault() (*Store, error) {
	return Open(DataDir())
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fitlog")
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.kv.Close()
}

// ClearAll empties every table atomically.
func (s *Store) ClearAll() error {
	return s.kv.ClearAll()
}

// MetaGet reads a meta value; ok is false when the key is absent.
func (s *Store) MetaGet(key string) (string, bool, error) {
	return s.kv.MetaGet(key)
}

// MetaSet writes a meta key/value pair.
func (s *Store) MetaSet(key, value string) error {
	return s.kv.MetaSet(key, value)
}
