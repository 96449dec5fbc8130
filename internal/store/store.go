// Package store holds the authoritative in-memory collection of records.
//
// A Store is single-writer: it does no locking, and NextSequenceID does not
// reserve the ID it returns. Callers that race must treat the ID as a hint
// and retry Insert on a DuplicateKeyError.
package store

import (
	"github.com/user/ajar/internal/model"
)

// cloner is implemented by records holding reference types (slices, maps)
// that ListAll must not share with the caller.
type cloner[T any] interface {
	Clone() T
}

// Store owns an insertion-ordered collection of records with unique keys.
type Store[T model.Record] struct {
	items []T
	index map[string]int // key -> position in items
}

// New creates a store seeded with the given records, in order.
// Returns a DuplicateKeyError if two seed records share a key.
func New[T model.Record](seed ...T) (*Store[T], error) {
	s := &Store[T]{
		items: make([]T, 0, len(seed)),
		index: make(map[string]int, len(seed)),
	}
	for _, rec := range seed {
		if err := s.Insert(rec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// Has reports whether a record with key exists.
func (s *Store[T]) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Get returns a copy of the record with key.
func (s *Store[T]) Get(key string) (T, error) {
	i, ok := s.index[key]
	if !ok {
		var zero T
		return zero, &model.NotFoundError{Key: key}
	}
	return clone(s.items[i]), nil
}

// Keys returns all keys in insertion order.
func (s *Store[T]) Keys() []string {
	keys := make([]string, len(s.items))
	for i, rec := range s.items {
		keys[i] = rec.Key()
	}
	return keys
}

// NextSequenceID returns the next free sequence ID in a partition.
// The ID is not reserved; calling it twice before an insert returns the
// same value.
func (s *Store[T]) NextSequenceID(prefix, partition string) string {
	return model.NextSequenceID(s.Keys(), prefix, partition)
}

// CheckInsert returns the error Insert would fail with, without storing rec.
func (s *Store[T]) CheckInsert(rec T) error {
	if key := rec.Key(); s.Has(key) {
		return &model.DuplicateKeyError{Key: key}
	}
	return nil
}

// Insert appends a record. Fails with DuplicateKeyError when the key exists.
func (s *Store[T]) Insert(rec T) error {
	if err := s.CheckInsert(rec); err != nil {
		return err
	}
	s.index[rec.Key()] = len(s.items)
	s.items = append(s.items, clone(rec))
	return nil
}

// CheckUpdate returns the error Update would fail with, without storing rec.
func (s *Store[T]) CheckUpdate(key string, rec T) error {
	if !s.Has(key) {
		return &model.NotFoundError{Key: key}
	}
	if rec.Key() != key {
		return &model.ValidationError{Field: "key", Reason: "cannot change from '" + key + "' to '" + rec.Key() + "'"}
	}
	return nil
}

// Update replaces the record stored under key, keeping its position.
// Fails with NotFoundError when key is absent. The key itself cannot
// change: a replacement with a different key is rejected.
func (s *Store[T]) Update(key string, rec T) error {
	if err := s.CheckUpdate(key, rec); err != nil {
		return err
	}
	s.items[s.index[key]] = clone(rec)
	return nil
}

// Upsert updates the record when its key exists and inserts it otherwise.
func (s *Store[T]) Upsert(rec T) (inserted bool, err error) {
	if s.Has(rec.Key()) {
		return false, s.Update(rec.Key(), rec)
	}
	return true, s.Insert(rec)
}

// ListAll returns a snapshot of every record in insertion order.
func (s *Store[T]) ListAll() []T {
	out := make([]T, len(s.items))
	for i, rec := range s.items {
		out[i] = clone(rec)
	}
	return out
}

func clone[T any](rec T) T {
	if c, ok := any(rec).(cloner[T]); ok {
		return c.Clone()
	}
	return rec
}
