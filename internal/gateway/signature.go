// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package gateway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// Sign computes the HMAC-SHA512 of the canonical "k1=v1&k2=v2" form of
// p, keyed with secret, and returns it as lowercase hex. The signed
// string carries the raw parameter values; percent-encoding is applied
// only when the parameters are later placed into a URL, never to the
// signing input.
func Sign(p Params, secret string) string {
	var b strings.Builder
	for i, k := range Canonicalize(p) {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(p[k])
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(b.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the signature over p and compares it to
// the received one in constant time. The comparison is case-insensitive
// on the hex encoding.
func VerifySignature(p Params, secret, received string) bool {
	expected := Sign(p, secret)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(received)))
}
