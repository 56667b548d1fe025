// ABOUTME: Typed read helpers over the raw transaction API.
// ABOUTME: Generic JSON decoding so the store stays free of domain types.
package kv

import (
	"encoding/json"
	"fmt"
)

// TxGet reads and decodes a record inside a transaction. Missing keys
// return nil, nil; callers must nil-check.
func TxGet[T any](tx *Tx, table string, key uint64) (*T, error) {
	raw, err := tx.GetRaw(table, key)
	if err != nil || raw == nil {
		return nil, err
	}
	return decode[T](raw)
}

// TxGetAll reads and decodes every record in a table inside a transaction.
func TxGetAll[T any](tx *Tx, table string) ([]*T, error) {
	raws, err := tx.GetAllRaw(table)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](raws)
}

// TxGetAllByIndex reads and decodes records matching an index value inside
// a transaction.
func TxGetAllByIndex[T any](tx *Tx, table, index, value string) ([]*T, error) {
	raws, err := tx.GetAllByIndexRaw(table, index, value)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](raws)
}

// Get reads a single record in its own read transaction.
func Get[T any](s *Store, table string, key uint64) (*T, error) {
	var out *T
	err := s.View(func(tx *Tx) error {
		var err error
		out, err = TxGet[T](tx, table, key)
		return err
	})
	return out, err
}

// GetAll reads every record of a table in its own read transaction.
func GetAll[T any](s *Store, table string) ([]*T, error) {
	var out []*T
	err := s.View(func(tx *Tx) error {
		var err error
		out, err = TxGetAll[T](tx, table)
		return err
	})
	return out, err
}

// GetAllByIndex reads records matching an index value in its own read
// transaction.
func GetAllByIndex[T any](s *Store, table, index, value string) ([]*T, error) {
	var out []*T
	err := s.View(func(tx *Tx) error {
		var err error
		out, err = TxGetAllByIndex[T](tx, table, index, value)
		return err
	})
	return out, err
}

func decode[T any](raw json.RawMessage) (*T, error) {
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

func decodeAll[T any](raws []json.RawMessage) ([]*T, error) {
	out := make([]*T, 0, len(raws))
	for _, raw := range raws {
		rec, err := decode[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
