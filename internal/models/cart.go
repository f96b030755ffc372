// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package models

import "time"

// CartLine is one selected product in a buyer's cart. Color is the
// chosen variant; it must be one of the product's Colors when set.
type CartLine struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Cart is a buyer's current selection, keyed by buyer ID (one cart per
// buyer). Lines reference live products; snapshotting happens at
// checkout, not here.
type Cart struct {
	BuyerID   string     `json:"buyer_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}
