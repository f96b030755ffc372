// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package store

import (
	"context"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/leviz2304/bazaar/internal/models"
)

// ReviewRepo persists product reviews. Reviews are keyed by product so
// the storefront listing is a single prefix scan.
type ReviewRepo struct {
	db *badger.DB
}

func (r *ReviewRepo) Create(ctx context.Context, rv *models.Review) error {
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now().UTC()
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, reviewKeyPrefix+rv.ProductID+":"+rv.ID, rv)
	})
}

// ListByProduct returns all reviews for a product, newest first.
func (r *ReviewRepo) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(reviewKeyPrefix + productID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rv models.Review
			if err := it.Item().Value(func(val []byte) error {
				return unmarshalJSON(val, &rv)
			}); err != nil {
				return err
			}
			reviews = append(reviews, rv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}
