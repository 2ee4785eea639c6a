// Package store persists presets and the server instance record in BadgerDB.
package store

import (
	"encoding/json/v2"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New opens (or creates) the database at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true
	return open(opts, logger)
}

// NewInMemory opens a database that lives only as long as the Store.
func NewInMemory(logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts, logger)
}

func open(opts badger.Options, logger *slog.Logger) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Badger database opened", "path", opts.Dir, "in_memory", opts.InMemory)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// get decodes the value at key into dest. Missing keys return
// badger.ErrKeyNotFound.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		return getTxn(txn, key, dest)
	})
}

// set stores value at key as JSON.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

func getTxn(txn *badger.Txn, key []byte, dest any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, dest)
	})
}

func setTxn(txn *badger.Txn, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return txn.Set(key, data)
}
