// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package store

import (
	"context"
	"errors"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/leviz2304/bazaar/internal/models"
)

// ProductRepo persists catalog entries with a per-store index.
type ProductRepo struct {
	db *badger.DB
}

// Create stores a new product and its store index entry.
func (r *ProductRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if err := setJSON(txn, productKeyPrefix+p.ID, p); err != nil {
			return err
		}
		indexKey := productStoreKeyPrefix + p.StoreID + ":" + p.ID
		return txn.Set([]byte(indexKey), []byte(p.ID))
	})
}

// Get retrieves a product by ID.
func (r *ProductRepo) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, productKeyPrefix+id, &p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetMany resolves a batch of product IDs in one read transaction.
// A missing ID fails the whole batch with ErrNotFound.
func (r *ProductRepo) GetMany(ctx context.Context, ids []string) ([]models.Product, error) {
	products := make([]models.Product, 0, len(ids))
	err := r.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			var p models.Product
			if err := getJSON(txn, productKeyPrefix+id, &p); err != nil {
				return err
			}
			products = append(products, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Update overwrites an existing product. StoreID is immutable so the
// store index needs no maintenance.
func (r *ProductRepo) Update(ctx context.Context, p *models.Product) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var current models.Product
		if err := getJSON(txn, productKeyPrefix+p.ID, &current); err != nil {
			return err
		}
		p.StoreID = current.StoreID
		p.CreatedAt = current.CreatedAt
		return setJSON(txn, productKeyPrefix+p.ID, p)
	})
}

// Delete removes a product and its index entry. Deleting an absent
// product is a no-op.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var p models.Product
		err := getJSON(txn, productKeyPrefix+id, &p)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}
		if err := txn.Delete([]byte(productKeyPrefix + id)); err != nil {
			return err
		}
		return txn.Delete([]byte(productStoreKeyPrefix + p.StoreID + ":" + id))
	})
}

// List returns products matching the filter plus the total match count
// before limit/offset. When the filter names a store, the scan walks the
// store index rather than the whole catalog.
func (r *ProductRepo) List(ctx context.Context, f models.ProductFilter) ([]models.Product, int, error) {
	var products []models.Product
	total := 0

	collect := func(p *models.Product) {
		if !matchProduct(p, f) {
			return
		}
		if total >= f.Offset && (f.Limit <= 0 || len(products) < f.Limit) {
			products = append(products, *p)
		}
		total++
	}

	err := r.db.View(func(txn *badger.Txn) error {
		if f.StoreID != "" {
			return scanIndex(txn, productStoreKeyPrefix+f.StoreID+":", func(id string) error {
				var p models.Product
				if err := getJSON(txn, productKeyPrefix+id, &p); err != nil {
					return err
				}
				collect(&p)
				return nil
			})
		}

		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(productKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var p models.Product
			if err := it.Item().Value(func(val []byte) error {
				return unmarshalJSON(val, &p)
			}); err != nil {
				return err
			}
			collect(&p)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// matchProduct applies the non-store filter fields.
func matchProduct(p *models.Product, f models.ProductFilter) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	return true
}
