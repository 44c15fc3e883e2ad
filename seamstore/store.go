// Package seamstore keeps seam edge lists per shape in a badger database.
//
// Values use the unwrap seam data layout (see [unwrap.MarshalSeams]), so a
// stored list can be copied to or from a host's own seam attribute unchanged.
package seamstore

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v3"

	"github.com/gogpu/unwrap"
)

// ErrNotFound is returned by Load when a shape has no stored seams.
var ErrNotFound = errors.New("seamstore: no seams stored")

var keyPrefix = []byte("seams/")

// Store is a seam list database. It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens or creates the database in dir. An empty dir keeps everything in
// memory and loses it on Close.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = badgerLogger{unwrap.Logger()}
	if dir == "" {
		opts.InMemory = true
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("seamstore: open %q: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func shapeKey(shape string) []byte {
	return append(append([]byte(nil), keyPrefix...), shape...)
}

// Load returns the seam ids stored for shape.
func (s *Store) Load(shape string) ([]int, error) {
	var ids []int
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		ids, err = get(txn, shape)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, shape)
	}
	return ids, err
}

// Save replaces the seam ids of shape.
func (s *Store) Save(shape string, ids []int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return put(txn, shape, ids)
	})
}

// Add merges selected into the seams of shape and returns the stored list.
// Ids outside [0, edgeCount) are dropped.
func (s *Store) Add(shape string, selected []int, edgeCount int) ([]int, error) {
	return s.modify(shape, func(cur []int) []int {
		return unwrap.AddSeamEdges(cur, selected, edgeCount)
	})
}

// Remove drops selected from the seams of shape and returns the stored list.
func (s *Store) Remove(shape string, selected []int, edgeCount int) ([]int, error) {
	return s.modify(shape, func(cur []int) []int {
		return unwrap.RemoveSeamEdges(cur, selected, edgeCount)
	})
}

// Clear stores an empty seam list for shape.
func (s *Store) Clear(shape string) error {
	return s.Save(shape, nil)
}

// Delete removes the entry of shape entirely.
func (s *Store) Delete(shape string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(shapeKey(shape))
	})
}

// Keys lists the shapes with stored seams in key order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
			Prefix:         keyPrefix,
		})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			k := it.Item().Key()
			keys = append(keys, string(k[len(keyPrefix):]))
		}
		return nil
	})
	return keys, err
}

func (s *Store) modify(shape string, fn func([]int) []int) ([]int, error) {
	var ids []int
	err := s.db.Update(func(txn *badger.Txn) error {
		cur, err := get(txn, shape)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		ids = fn(cur)
		return put(txn, shape, ids)
	})
	return ids, err
}

func get(txn *badger.Txn, shape string) ([]int, error) {
	item, err := txn.Get(shapeKey(shape))
	if err != nil {
		return nil, err
	}
	var ids []int
	err = item.Value(func(val []byte) error {
		ids, err = unwrap.UnmarshalSeams(val)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("seamstore: %q: %w", shape, err)
	}
	return ids, nil
}

func put(txn *badger.Txn, shape string, ids []int) error {
	data, err := unwrap.MarshalSeams(ids)
	if err != nil {
		return err
	}
	return txn.Set(shapeKey(shape), data)
}

// badgerLogger forwards badger's printf-style logging to slog. Badger's info
// chatter goes to debug.
type badgerLogger struct {
	l *slog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error("seamstore: " + trimNewline(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn("seamstore: " + trimNewline(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug("seamstore: " + trimNewline(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debug("seamstore: " + trimNewline(fmt.Sprintf(format, args...)))
}

func trimNewline(s string) string {
	return strings.TrimRight(s, "\n")
}
