// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

// Package store implements the marketplace's document repositories on
// BadgerDB. Every entity is a JSON document under a typed key prefix;
// secondary indexes are separate keys mapping an index value to the
// primary key. All mutations run inside a single Badger transaction, so
// read-check-write sequences (such as the order payment settlement) are
// atomic without any extra locking.
package store

import (
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/leviz2304/bazaar/internal/config"
	"github.com/leviz2304/bazaar/internal/logging"
)

// Key prefixes for the document keyspace. Secondary index keys embed the
// indexed value and the primary key so that prefix scans enumerate an
// index without touching documents.
const (
	userKeyPrefix      = "user:"
	userEmailKeyPrefix = "user_email:"

	storeKeyPrefix      = "shop:"
	storeOwnerKeyPrefix = "shop_owner:"
	storeSlugKeyPrefix  = "shop_slug:"

	productKeyPrefix      = "product:"
	productStoreKeyPrefix = "product_shop:"

	cartKeyPrefix = "cart:"

	orderKeyPrefix      = "order:"
	orderBuyerKeyPrefix = "order_buyer:"
	orderStoreKeyPrefix = "order_shop:"

	reviewKeyPrefix = "review:"
)

// Sentinel errors shared by the repositories.
var (
	ErrNotFound     = errors.New("document not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrSlugTaken    = errors.New("store slug already taken")
	ErrOrderSettled = errors.New("order already settled")
)

// Store aggregates the per-entity repositories over one Badger instance.
type Store struct {
	db *badger.DB

	Users    *UserRepo
	Stores   *StoreRepo
	Products *ProductRepo
	Carts    *CartRepo
	Orders   *OrderRepo
	Reviews  *ReviewRepo
}

// Open opens (or creates) the Badger database per cfg and wires the
// repositories. The caller owns the returned Store and must Close it.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Badger logs through its own interface; route it to zerolog.
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// New wires the repositories over an already-open Badger instance.
// Used directly by tests with an in-memory database.
func New(db *badger.DB) *Store {
	return &Store{
		db:       db,
		Users:    &UserRepo{db: db},
		Stores:   &StoreRepo{db: db},
		Products: &ProductRepo{db: db},
		Carts:    &CartRepo{db: db},
		Orders:   &OrderRepo{db: db},
		Reviews:  &ReviewRepo{db: db},
	}
}

// DB exposes the underlying Badger handle for health checks.
func (s *Store) DB() *badger.DB { return s.db }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// badgerLogger adapts Badger's logger interface to zerolog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error().Msgf("badger: "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Warn().Msgf("badger: "+format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}
