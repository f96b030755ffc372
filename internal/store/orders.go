// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/leviz2304/bazaar/internal/models"
)

// OrderRepo persists orders with buyer and store secondary indexes.
type OrderRepo struct {
	db *badger.DB
}

// Create writes the order plus its buyer and store index entries.
func (r *OrderRepo) Create(ctx context.Context, o *models.Order) error {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := setJSON(txn, orderKeyPrefix+o.ID, o); err != nil {
			return err
		}
		if err := txn.Set([]byte(orderBuyerKeyPrefix+o.BuyerID+":"+o.ID), []byte(o.ID)); err != nil {
			return err
		}
		return txn.Set([]byte(orderStoreKeyPrefix+o.StoreID+":"+o.ID), []byte(o.ID))
	})
}

// Get returns the order by ID.
func (r *OrderRepo) Get(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, orderKeyPrefix+id, &o)
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// SettlePayment records the outcome of a verified payment callback in a
// single read-check-write transaction. The first settlement wins and
// marks the order settled; after that a duplicate callback carrying the
// same outcome is a no-op, while a conflicting outcome is rejected with
// ErrOrderSettled. A paid order therefore never reverts to unpaid.
func (r *OrderRepo) SettlePayment(ctx context.Context, id string, paid bool, status string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var o models.Order
		if err := getJSON(txn, orderKeyPrefix+id, &o); err != nil {
			return err
		}

		if o.Settled {
			if o.Paid == paid && o.Status == status {
				return nil
			}
			return ErrOrderSettled
		}

		o.Settled = true
		o.Paid = paid
		o.Status = status
		return setJSON(txn, orderKeyPrefix+id, &o)
	})
}

// UpdateStatus sets the fulfilment status of an order. The seller
// console drives this; payment outcome fields are untouched.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var o models.Order
		if err := getJSON(txn, orderKeyPrefix+id, &o); err != nil {
			return err
		}
		o.Status = status
		return setJSON(txn, orderKeyPrefix+id, &o)
	})
}

// List returns orders matching the filter, newest first, with the total
// match count before limit/offset. A buyer or store filter walks the
// matching index; otherwise the whole order space is scanned.
func (r *OrderRepo) List(ctx context.Context, f models.OrderFilter) ([]models.Order, int, error) {
	var matched []models.Order

	collect := func(o *models.Order) {
		if f.Status != "" && !strings.EqualFold(o.Status, f.Status) {
			return
		}
		matched = append(matched, *o)
	}

	err := r.db.View(func(txn *badger.Txn) error {
		load := func(id string) error {
			var o models.Order
			if err := getJSON(txn, orderKeyPrefix+id, &o); err != nil {
				return err
			}
			collect(&o)
			return nil
		}

		switch {
		case f.BuyerID != "":
			return scanIndex(txn, orderBuyerKeyPrefix+f.BuyerID+":", load)
		case f.StoreID != "":
			return scanIndex(txn, orderStoreKeyPrefix+f.StoreID+":", load)
		}

		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(orderKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var o models.Order
			if err := it.Item().Value(func(val []byte) error {
				return unmarshalJSON(val, &o)
			}); err != nil {
				return err
			}
			collect(&o)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if f.Offset > 0 {
		if f.Offset >= total {
			return []models.Order{}, total, nil
		}
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}
