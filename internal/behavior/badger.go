// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package behavior

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// behaviorKeyPrefix namespaces behavior records inside the BadgerDB.
const behaviorKeyPrefix = "behavior:"

// BadgerStore implements Store on BadgerDB for durable storage across
// restarts. Records are stored as JSON under "behavior:<userID>".
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore wraps an already-open BadgerDB.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens (or creates) a BadgerDB at path and wraps it.
// Badger's own chatty logger is replaced with the provided zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenBadgerStore(path string, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(badgerLogger{logger: logger.With().Str("component", "badger").Logger()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return NewBadgerStore(db), nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// RunGC runs one round of value-log garbage collection. Returns badger's
// ErrNoRewrite when there was nothing to collect, which callers may ignore.
func (s *BadgerStore) RunGC(discardRatio float64) error {
	return s.db.RunValueLogGC(discardRatio)
}

// Get retrieves a behavior record by user ID.
func (s *BadgerStore) Get(_ context.Context, userID string) (*UserBehavior, error) {
	var ub UserBehavior

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(behaviorKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get behavior: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &ub)
		})
	})
	if err != nil {
		return nil, err
	}
	return &ub, nil
}

// Put stores or replaces a behavior record.
func (s *BadgerStore) Put(_ context.Context, ub *UserBehavior) error {
	data, err := json.Marshal(ub)
	if err != nil {
		return fmt.Errorf("marshal behavior: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(behaviorKeyPrefix+ub.UserID), data)
	})
}

// ListUserIDs iterates the behavior key prefix, keys only.
func (s *BadgerStore) ListUserIDs(_ context.Context) ([]string, error) {
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(behaviorKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list behavior keys: %w", err)
	}
	return ids, nil
}

// badgerLogger adapts zerolog to badger.Logger.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}
