// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package models

import "time"

// Product is a catalog entry owned by a store. Price is in minor
// currency units. Colors lists the selectable variants.
type Product struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"store_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Category    string    `json:"category,omitempty"`
	Colors      []string  `json:"colors,omitempty"`
	Images      []string  `json:"images,omitempty"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductFilter narrows product listings. Zero values mean "no filter".
// MinPrice/MaxPrice are minor units; MaxPrice=0 disables the upper bound.
type ProductFilter struct {
	StoreID  string
	Category string
	Search   string
	MinPrice int64
	MaxPrice int64
	Limit    int
	Offset   int
}
