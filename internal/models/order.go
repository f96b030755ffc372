// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package models

import "time"

// PaymentMethod selects the payment path chosen at checkout.
type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "cod"
	PaymentGateway PaymentMethod = "gateway"
)

// Order status labels. Status transitions only through the events in
// checkout (creation) and the payment callback (settlement).
const (
	StatusOrderPlaced   = "Order Placed"
	StatusPaid          = "Paid"
	StatusPaymentFailed = "Payment Failed"
)

// ProductSnapshot captures product fields at order time. The snapshot is
// immutable once the order exists, even if the catalog later changes.
type ProductSnapshot struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image,omitempty"`
}

// OrderItem is one purchased line: a product snapshot, the chosen
// variant and the quantity.
type OrderItem struct {
	Product  ProductSnapshot `json:"product"`
	Color    string          `json:"color,omitempty"`
	Quantity int             `json:"quantity"`
}

// Address is the shipping destination, snapshotted free-form at checkout.
type Address struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Line1    string `json:"line1"`
	City     string `json:"city"`
	Country  string `json:"country,omitempty"`
	ZipCode  string `json:"zip_code,omitempty"`
}

// Order is the persistent record of a purchase. Amount is the total
// charge in minor currency units, fixed at creation: the sum of item
// line totals plus the delivery charge.
//
// Paid is the payment flag; Settled is a monotonic terminal marker set
// by the payment callback. Once Settled, an order never leaves its
// terminal state: a duplicate callback carrying the same outcome is a
// safe no-op, and a conflicting stale callback is rejected.
type Order struct {
	ID            string        `json:"id"`
	BuyerID       string        `json:"buyer_id"`
	StoreID       string        `json:"store_id"`
	Items         []OrderItem   `json:"items"`
	Amount        int64         `json:"amount"`
	Address       Address       `json:"address"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Paid          bool          `json:"paid"`
	Settled       bool          `json:"settled"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// OrderFilter narrows order listings. Zero values mean "no filter".
type OrderFilter struct {
	BuyerID string
	StoreID string
	Status  string
	Limit   int
	Offset  int
}
