// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

// Package gateway implements the payment gateway integration: building
// signed redirect URLs for outbound payment requests and verifying the
// signature on the gateway's return callback. The wire contract is the
// VNPay query-parameter protocol; field names are fixed by the gateway
// and must never change.
package gateway

import "sort"

// Params is a flat string mapping of gateway request fields.
type Params map[string]string

// Canonicalize returns the keys of p in ascending byte-wise order. The
// gateway sorts the same way on its side, so both ends hash an
// identical byte sequence. Comparison is on raw bytes, not locale-aware
// collation.
func Canonicalize(p Params) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
