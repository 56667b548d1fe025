// ABOUTME: Badger-backed record store with named tables and secondary indices.
// ABOUTME: Handles store lifecycle, key layout, and transaction boundaries.
package kv

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	badger "github.com/dgraph-io/badger/v3"
)

// Record is implemented by any value persisted in a table with an
// auto-assigned uint64 primary key.
type Record interface {
	RecordID() uint64
	SetRecordID(uint64)
}

// Index declares a secondary index over a table. Value extracts the indexed
// key from a record; indices are equality-match only.
type Index struct {
	Name   string
	Unique bool
	Value  func(Record) string
}

// Table declares a named record collection and its indices.
type Table struct {
	Name    string
	Indices []Index
}

// Key prefixes. Every stored key starts with one of these bytes followed by
// a 0x00 separator.
const (
	prefixRecord = 'r' // r <table> <id>        -> envelope JSON
	prefixSeq    = 's' // s <table>             -> 8-byte counter
	prefixIndex  = 'i' // i <table> <idx> <val> <id> -> nil
	prefixUnique = 'u' // u <table> <idx> <val> -> 8-byte id
	prefixMeta   = 'm' // m <key>               -> meta value JSON
	prefixVers   = 'v' // v schema              -> 8-byte schema version
)

const sep = 0x00

// Store is a durable key-value record store over Badger. All mutations run
// through Update, which serializes writers; the entity graph assumes a
// single logical writer.
type Store struct {
	db     *badger.DB
	tables map[string]Table

	mu sync.Mutex // serializes update transactions
}

// Open opens or creates the store at dir and registers the given tables.
// Initialization failures wrap ErrStorageUnavailable.
func Open(dir string, tables []Table) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", ErrStorageUnavailable, err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger at %s: %v", ErrStorageUnavailable, dir, err)
	}

	s := &Store{db: db, tables: make(map[string]Table, len(tables))}
	for _, t := range tables {
		s.tables[t.Name] = t
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Tables returns the names of all registered tables.
func (s *Store) Tables() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	return names
}

// View runs fn in a read-only transaction.
func (s *Store) View(fn func(*Tx) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		return fn(&Tx{store: s, txn: txn})
	})
}

// Update runs fn in a single read-write transaction. The whole fn commits
// atomically or not at all, which is what makes cascade deletes and
// full-replace saves safe against partial failure.
func (s *Store) Update(fn func(*Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		return fn(&Tx{store: s, txn: txn})
	})
}

// Put upserts a record in its own transaction.
func (s *Store) Put(table string, rec Record) error {
	return s.Update(func(tx *Tx) error { return tx.Put(table, rec) })
}

// Add inserts a record in its own transaction, returning the assigned key.
func (s *Store) Add(table string, rec Record) (uint64, error) {
	var id uint64
	err := s.Update(func(tx *Tx) error {
		var err error
		id, err = tx.Add(table, rec)
		return err
	})
	return id, err
}

// Delete removes a record by key in its own transaction. Missing keys are
// not an error.
func (s *Store) Delete(table string, key uint64) error {
	return s.Update(func(tx *Tx) error { return tx.Delete(table, key) })
}

// ClearAll empties every registered table and the meta table in one atomic
// transaction. Sequence counters survive, so keys assigned after a clear do
// not collide with any previously exported snapshot.
func (s *Store) ClearAll() error {
	return s.Update(func(tx *Tx) error { return tx.ClearAll() })
}

// MetaGet reads a meta value; missing keys return "" with ok=false.
func (s *Store) MetaGet(key string) (string, bool, error) {
	var value string
	var ok bool
	err := s.View(func(tx *Tx) error {
		var err error
		value, ok, err = tx.MetaGet(key)
		return err
	})
	return value, ok, err
}

// MetaSet writes a meta key/value pair.
func (s *Store) MetaSet(key, value string) error {
	return s.Update(func(tx *Tx) error { return tx.MetaSet(key, value) })
}

// MetaAll returns every meta row.
func (s *Store) MetaAll() ([]MetaEntry, error) {
	var entries []MetaEntry
	err := s.View(func(tx *Tx) error {
		var err error
		entries, err = tx.MetaAll()
		return err
	})
	return entries, err
}

// SchemaVersion returns the persisted schema version, zero if unset.
func (s *Store) SchemaVersion() (uint64, error) {
	var version uint64
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(versionKey())
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) == 8 {
				version = binary.BigEndian.Uint64(val)
			}
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// SetSchemaVersion persists the schema version marker.
func (s *Store) SetSchemaVersion(version uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], version)
		return txn.Set(versionKey(), buf[:])
	})
}

func (s *Store) table(name string) (Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return Table{}, fmt.Errorf("unknown table: %q", name)
	}
	return t, nil
}

// Key construction. Tables and index names never contain 0x00, and index
// values are terminated by a separator before the trailing id bytes.

func recordKey(table string, id uint64) []byte {
	k := make([]byte, 0, len(table)+11)
	k = append(k, prefixRecord, sep)
	k = append(k, table...)
	k = append(k, sep)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], id)
	return append(k, buf[:]...)
}

func recordPrefix(table string) []byte {
	k := make([]byte, 0, len(table)+3)
	k = append(k, prefixRecord, sep)
	k = append(k, table...)
	return append(k, sep)
}

func seqKey(table string) []byte {
	k := make([]byte, 0, len(table)+2)
	k = append(k, prefixSeq, sep)
	return append(k, table...)
}

func indexKey(table, index, value string, id uint64) []byte {
	k := indexPrefix(table, index, value)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], id)
	return append(k, buf[:]...)
}

func indexPrefix(table, index, value string) []byte {
	k := make([]byte, 0, len(table)+len(index)+len(value)+5)
	k = append(k, prefixIndex, sep)
	k = append(k, table...)
	k = append(k, sep)
	k = append(k, index...)
	k = append(k, sep)
	k = append(k, value...)
	return append(k, sep)
}

func uniqueKey(table, index, value string) []byte {
	k := make([]byte, 0, len(table)+len(index)+len(value)+4)
	k = append(k, prefixUnique, sep)
	k = append(k, table...)
	k = append(k, sep)
	k = append(k, index...)
	k = append(k, sep)
	return append(k, value...)
}

func uniqueTablePrefix(table string) []byte {
	k := make([]byte, 0, len(table)+3)
	k = append(k, prefixUnique, sep)
	k = append(k, table...)
	return append(k, sep)
}

func indexTablePrefix(table string) []byte {
	k := make([]byte, 0, len(table)+3)
	k = append(k, prefixIndex, sep)
	k = append(k, table...)
	return append(k, sep)
}

func metaKey(key string) []byte {
	k := make([]byte, 0, len(key)+2)
	k = append(k, prefixMeta, sep)
	return append(k, key...)
}

func metaPrefix() []byte {
	return []byte{prefixMeta, sep}
}

func versionKey() []byte {
	return []byte{prefixVers, sep, 's', 'c', 'h', 'e', 'm', 'a'}
}

// Uint64Key formats a numeric foreign key as a fixed-width index value so
// equality lookups behave the same as string-valued indices.
func Uint64Key(id uint64) string {
	return fmt.Sprintf("%020d", id)
}
