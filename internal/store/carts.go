// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package store

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/leviz2304/bazaar/internal/models"
)

// CartRepo persists one cart per buyer, keyed by buyer ID.
type CartRepo struct {
	db *badger.DB
}

// Get returns the buyer's cart. A buyer with no stored cart gets an
// empty one; callers never see ErrNotFound here.
func (r *CartRepo) Get(ctx context.Context, buyerID string) (*models.Cart, error) {
	cart := &models.Cart{BuyerID: buyerID}
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, cartKeyPrefix+buyerID, cart)
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return cart, nil
}

// Put overwrites the buyer's cart.
func (r *CartRepo) Put(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	return r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, cartKeyPrefix+cart.BuyerID, cart)
	})
}

// AddLine merges a line into the buyer's cart; an existing line for the
// same product and color has its quantity increased.
func (r *CartRepo) AddLine(ctx context.Context, buyerID string, line models.CartLine) error {
	return r.db.Update(func(txn *badger.Txn) error {
		cart := models.Cart{BuyerID: buyerID}
		if err := getJSON(txn, cartKeyPrefix+buyerID, &cart); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		merged := false
		for i := range cart.Lines {
			if cart.Lines[i].ProductID == line.ProductID && cart.Lines[i].Color == line.Color {
				cart.Lines[i].Quantity += line.Quantity
				merged = true
				break
			}
		}
		if !merged {
			cart.Lines = append(cart.Lines, line)
		}
		cart.UpdatedAt = time.Now().UTC()
		return setJSON(txn, cartKeyPrefix+buyerID, &cart)
	})
}

// RemoveLine drops the line for the given product and color. Removing
// an absent line is a no-op.
func (r *CartRepo) RemoveLine(ctx context.Context, buyerID, productID, color string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		cart := models.Cart{BuyerID: buyerID}
		if err := getJSON(txn, cartKeyPrefix+buyerID, &cart); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}

		kept := cart.Lines[:0]
		for _, l := range cart.Lines {
			if l.ProductID == productID && l.Color == color {
				continue
			}
			kept = append(kept, l)
		}
		cart.Lines = kept
		cart.UpdatedAt = time.Now().UTC()
		return setJSON(txn, cartKeyPrefix+buyerID, &cart)
	})
}

// Clear empties the buyer's cart. Checkout calls this once the order is
// persisted; the policy of clearing before payment confirmation lives in
// the checkout service, not here.
func (r *CartRepo) Clear(ctx context.Context, buyerID string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(cartKeyPrefix + buyerID))
	})
}
