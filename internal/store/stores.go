// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package store

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/leviz2304/bazaar/internal/models"
)

// StoreRepo persists seller stores with owner and slug indexes.
type StoreRepo struct {
	db *badger.DB
}

// Create stores a new shop. Fails with ErrSlugTaken when the slug is in
// use. The owner index allows one store per owner; a second create for
// the same owner overwrites the index entry, which callers prevent by
// checking GetByOwner first.
func (r *StoreRepo) Create(ctx context.Context, s *models.Store) error {
	slugKey := storeSlugKeyPrefix + s.Slug
	return r.db.Update(func(txn *badger.Txn) error {
		taken, err := keyExists(txn, slugKey)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}
		if err := setJSON(txn, storeKeyPrefix+s.ID, s); err != nil {
			return err
		}
		if err := txn.Set([]byte(slugKey), []byte(s.ID)); err != nil {
			return err
		}
		return txn.Set([]byte(storeOwnerKeyPrefix+s.OwnerID), []byte(s.ID))
	})
}

// Get retrieves a store by ID.
func (r *StoreRepo) Get(ctx context.Context, id string) (*models.Store, error) {
	var s models.Store
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, storeKeyPrefix+id, &s)
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByOwner retrieves the store owned by ownerID.
func (r *StoreRepo) GetByOwner(ctx context.Context, ownerID string) (*models.Store, error) {
	var s models.Store
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(storeOwnerKeyPrefix + ownerID))
		if err != nil {
			return translateNotFound(err)
		}
		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}
		return getJSON(txn, storeKeyPrefix+id, &s)
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update overwrites an existing store document. The slug is immutable
// after creation, so no index maintenance is needed.
func (r *StoreRepo) Update(ctx context.Context, s *models.Store) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var current models.Store
		if err := getJSON(txn, storeKeyPrefix+s.ID, &current); err != nil {
			return err
		}
		s.Slug = current.Slug
		s.OwnerID = current.OwnerID
		s.CreatedAt = current.CreatedAt
		return setJSON(txn, storeKeyPrefix+s.ID, s)
	})
}

// List returns all stores for the admin back-office.
func (r *StoreRepo) List(ctx context.Context, limit, offset int) ([]models.Store, int, error) {
	var stores []models.Store
	total := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(storeKeyPrefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if total >= offset && (limit <= 0 || len(stores) < limit) {
				var s models.Store
				if err := it.Item().Value(func(val []byte) error {
					return unmarshalJSON(val, &s)
				}); err != nil {
					return err
				}
				stores = append(stores, s)
			}
			total++
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}
