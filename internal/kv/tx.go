// ABOUTME: Transaction-scoped record operations: CRUD, index scans, meta rows.
// ABOUTME: Records are stored as envelopes carrying their computed index keys.
package kv

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
)

// envelope wraps a stored record with the index values it was written
// under, so updates and deletes can unlink stale index entries without
// decoding the record itself.
type envelope struct {
	Keys map[string]string `json:"keys,omitempty"`
	Rec  json.RawMessage   `json:"rec"`
}

// MetaEntry is one row of the string-keyed meta table.
type MetaEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Tx exposes record operations within one transaction. Obtain one through
// Store.View or Store.Update.
type Tx struct {
	store *Store
	txn   *badger.Txn
}

// GetRaw reads the raw JSON of a record. Missing keys return nil, nil.
func (tx *Tx) GetRaw(table string, key uint64) (json.RawMessage, error) {
	if _, err := tx.store.table(table); err != nil {
		return nil, err
	}
	env, err := tx.readEnvelope(table, key)
	if err != nil || env == nil {
		return nil, err
	}
	return env.Rec, nil
}

// Put upserts a record by primary key. A record without a key is inserted
// with the next key in the table's sequence; a record carrying a key keeps
// it, and the sequence is advanced past it so later inserts cannot collide.
func (tx *Tx) Put(table string, rec Record) error {
	t, err := tx.store.table(table)
	if err != nil {
		return err
	}
	if rec.RecordID() == 0 {
		id, err := tx.nextSeq(table)
		if err != nil {
			return err
		}
		rec.SetRecordID(id)
	} else if err := tx.ensureSeq(table, rec.RecordID()); err != nil {
		return err
	}
	return tx.write(t, rec)
}

// Add inserts a record, always assigning the next primary key.
func (tx *Tx) Add(table string, rec Record) (uint64, error) {
	t, err := tx.store.table(table)
	if err != nil {
		return 0, err
	}
	id, err := tx.nextSeq(table)
	if err != nil {
		return 0, err
	}
	rec.SetRecordID(id)
	if err := tx.write(t, rec); err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes a record and its index entries. Missing keys are a no-op.
func (tx *Tx) Delete(table string, key uint64) error {
	t, err := tx.store.table(table)
	if err != nil {
		return err
	}
	env, err := tx.readEnvelope(table, key)
	if err != nil || env == nil {
		return err
	}
	for _, idx := range t.Indices {
		val, ok := env.Keys[idx.Name]
		if !ok {
			continue
		}
		if err := tx.unlinkIndex(t.Name, idx, val, key); err != nil {
			return err
		}
	}
	if err := tx.txn.Delete(recordKey(table, key)); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// GetAllRaw returns the raw JSON of every record in a table, in key order.
func (tx *Tx) GetAllRaw(table string) ([]json.RawMessage, error) {
	if _, err := tx.store.table(table); err != nil {
		return nil, err
	}
	prefix := recordPrefix(table)

	var out []json.RawMessage
	it := tx.txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		var env envelope
		if err := json.Unmarshal(val, &env); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		out = append(out, env.Rec)
	}
	return out, nil
}

// GetAllByIndexRaw returns the raw JSON of every record whose index entry
// matches value exactly.
func (tx *Tx) GetAllByIndexRaw(table, index, value string) ([]json.RawMessage, error) {
	t, err := tx.store.table(table)
	if err != nil {
		return nil, err
	}
	var idx *Index
	for i := range t.Indices {
		if t.Indices[i].Name == index {
			idx = &t.Indices[i]
			break
		}
	}
	if idx == nil {
		return nil, fmt.Errorf("unknown index %q on table %q", index, table)
	}

	ids, err := tx.indexLookup(t.Name, *idx, value)
	if err != nil {
		return nil, err
	}

	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		env, err := tx.readEnvelope(table, id)
		if err != nil {
			return nil, err
		}
		if env != nil {
			out = append(out, env.Rec)
		}
	}
	return out, nil
}

// ClearAll removes every record, index entry, and meta row for all
// registered tables. Runs inside the enclosing transaction, so the wipe is
// all-or-nothing. Sequence counters are left in place.
func (tx *Tx) ClearAll() error {
	var prefixes [][]byte
	for name := range tx.store.tables {
		prefixes = append(prefixes,
			recordPrefix(name),
			indexTablePrefix(name),
			uniqueTablePrefix(name),
		)
	}
	prefixes = append(prefixes, metaPrefix())

	for _, prefix := range prefixes {
		keys, err := tx.collectKeys(prefix)
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := tx.txn.Delete(k); err != nil {
				return fmt.Errorf("clear: %w", err)
			}
		}
	}
	return nil
}

// MetaGet reads a meta value by key.
func (tx *Tx) MetaGet(key string) (string, bool, error) {
	item, err := tx.txn.Get(metaKey(key))
	if err == badger.ErrKeyNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read meta %q: %w", key, err)
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", false, fmt.Errorf("read meta %q: %w", key, err)
	}
	var entry MetaEntry
	if err := json.Unmarshal(val, &entry); err != nil {
		return "", false, fmt.Errorf("decode meta %q: %w", key, err)
	}
	return entry.Value, true, nil
}

// MetaSet upserts a meta key/value row.
func (tx *Tx) MetaSet(key, value string) error {
	data, err := json.Marshal(MetaEntry{Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("encode meta %q: %w", key, err)
	}
	if err := tx.txn.Set(metaKey(key), data); err != nil {
		return fmt.Errorf("write meta %q: %w", key, err)
	}
	return nil
}

// MetaAll returns every meta row.
func (tx *Tx) MetaAll() ([]MetaEntry, error) {
	prefix := metaPrefix()

	var entries []MetaEntry
	it := tx.txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, fmt.Errorf("read meta: %w", err)
		}
		var entry MetaEntry
		if err := json.Unmarshal(val, &entry); err != nil {
			return nil, fmt.Errorf("decode meta: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// write stores the record envelope and reconciles index entries against the
// previously stored version, enforcing unique indices.
func (tx *Tx) write(t Table, rec Record) error {
	id := rec.RecordID()

	old, err := tx.readEnvelope(t.Name, id)
	if err != nil {
		return err
	}

	newKeys := make(map[string]string, len(t.Indices))
	for _, idx := range t.Indices {
		newKeys[idx.Name] = idx.Value(rec)
	}

	// Check unique constraints before touching anything. The transaction
	// would discard partial writes anyway, but failing first keeps the
	// error path cheap.
	for _, idx := range t.Indices {
		if !idx.Unique {
			continue
		}
		val := newKeys[idx.Name]
		item, err := tx.txn.Get(uniqueKey(t.Name, idx.Name, val))
		if err == badger.ErrKeyNotFound {
			continue
		}
		if err != nil {
			return fmt.Errorf("check unique index %s: %w", idx.Name, err)
		}
		existing, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("check unique index %s: %w", idx.Name, err)
		}
		if len(existing) == 8 && binary.BigEndian.Uint64(existing) != id {
			return fmt.Errorf("%w: %s.%s=%q", ErrConstraintViolation, t.Name, idx.Name, val)
		}
	}

	// Unlink index entries whose value changed.
	if old != nil {
		for _, idx := range t.Indices {
			oldVal, ok := old.Keys[idx.Name]
			if !ok || oldVal == newKeys[idx.Name] {
				continue
			}
			if err := tx.unlinkIndex(t.Name, idx, oldVal, id); err != nil {
				return err
			}
		}
	}

	// Link new index entries.
	var idBuf [8]byte
	binary.BigEndian.PutUint64(idBuf[:], id)
	for _, idx := range t.Indices {
		val := newKeys[idx.Name]
		if idx.Unique {
			if err := tx.txn.Set(uniqueKey(t.Name, idx.Name, val), idBuf[:]); err != nil {
				return fmt.Errorf("write unique index %s: %w", idx.Name, err)
			}
		} else {
			if err := tx.txn.Set(indexKey(t.Name, idx.Name, val, id), nil); err != nil {
				return fmt.Errorf("write index %s: %w", idx.Name, err)
			}
		}
	}

	recJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	envJSON, err := json.Marshal(envelope{Keys: newKeys, Rec: recJSON})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	if err := tx.txn.Set(recordKey(t.Name, id), envJSON); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

func (tx *Tx) unlinkIndex(table string, idx Index, value string, id uint64) error {
	var key []byte
	if idx.Unique {
		key = uniqueKey(table, idx.Name, value)
	} else {
		key = indexKey(table, idx.Name, value, id)
	}
	if err := tx.txn.Delete(key); err != nil {
		return fmt.Errorf("unlink index %s: %w", idx.Name, err)
	}
	return nil
}

func (tx *Tx) indexLookup(table string, idx Index, value string) ([]uint64, error) {
	if idx.Unique {
		item, err := tx.txn.Get(uniqueKey(table, idx.Name, value))
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("lookup unique index %s: %w", idx.Name, err)
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, fmt.Errorf("lookup unique index %s: %w", idx.Name, err)
		}
		if len(val) != 8 {
			return nil, fmt.Errorf("corrupt unique index entry for %s.%s", table, idx.Name)
		}
		return []uint64{binary.BigEndian.Uint64(val)}, nil
	}

	prefix := indexPrefix(table, idx.Name, value)
	keys, err := tx.collectKeys(prefix)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(keys))
	for _, k := range keys {
		if len(k) < 8 {
			return nil, fmt.Errorf("corrupt index entry for %s.%s", table, idx.Name)
		}
		ids = append(ids, binary.BigEndian.Uint64(k[len(k)-8:]))
	}
	return ids, nil
}

// collectKeys gathers all keys under prefix. The iterator is closed before
// returning so callers can mutate inside the same transaction.
func (tx *Tx) collectKeys(prefix []byte) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false

	var keys [][]byte
	it := tx.txn.NewIterator(opts)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys, nil
}

func (tx *Tx) readEnvelope(table string, id uint64) (*envelope, error) {
	item, err := tx.txn.Get(recordKey(table, id))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(val, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}

func (tx *Tx) nextSeq(table string) (uint64, error) {
	next := uint64(1)
	item, err := tx.txn.Get(seqKey(table))
	if err == nil {
		val, err := item.ValueCopy(nil)
		if err != nil {
			return 0, fmt.Errorf("read sequence: %w", err)
		}
		if len(val) == 8 {
			next = binary.BigEndian.Uint64(val) + 1
		}
	} else if err != badger.ErrKeyNotFound {
		return 0, fmt.Errorf("read sequence: %w", err)
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], next)
	if err := tx.txn.Set(seqKey(table), buf[:]); err != nil {
		return 0, fmt.Errorf("advance sequence: %w", err)
	}
	return next, nil
}

// ensureSeq advances the table sequence to at least id, mirroring how an
// explicit-key upsert interacts with an auto-increment key generator.
func (tx *Tx) ensureSeq(table string, id uint64) error {
	current := uint64(0)
	item, err := tx.txn.Get(seqKey(table))
	if err == nil {
		val, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read sequence: %w", err)
		}
		if len(val) == 8 {
			current = binary.BigEndian.Uint64(val)
		}
	} else if err != badger.ErrKeyNotFound {
		return fmt.Errorf("read sequence: %w", err)
	}

	if current >= id {
		return nil
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], id)
	if err := tx.txn.Set(seqKey(table), buf[:]); err != nil {
		return fmt.Errorf("advance sequence: %w", err)
	}
	return nil
}
