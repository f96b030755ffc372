// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package gateway

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/leviz2304/bazaar/internal/config"
)

// Wire field names, fixed by the gateway contract.
const (
	fieldVersion      = "vnp_Version"
	fieldCommand      = "vnp_Command"
	fieldMerchantCode = "vnp_TmnCode"
	fieldAmount       = "vnp_Amount"
	fieldCurrency     = "vnp_CurrCode"
	fieldTxnRef       = "vnp_TxnRef"
	fieldOrderInfo    = "vnp_OrderInfo"
	fieldOrderType    = "vnp_OrderType"
	fieldLocale       = "vnp_Locale"
	fieldReturnURL    = "vnp_ReturnUrl"
	fieldIPAddr       = "vnp_IpAddr"
	fieldCreateDate   = "vnp_CreateDate"
	fieldSecureHash   = "vnp_SecureHash"
	fieldResponseCode = "vnp_ResponseCode"

	// ResponseCodeSuccess is the gateway's success sentinel.
	ResponseCodeSuccess = "00"

	createDateLayout = "20060102150405"
)

var (
	ErrSignatureMismatch = errors.New("gateway: callback signature mismatch")
	ErrMissingSignature  = errors.New("gateway: callback carries no signature")
	ErrMissingTxnRef     = errors.New("gateway: callback carries no transaction reference")
)

// Client builds signed payment URLs and verifies return callbacks for
// one merchant account.
type Client struct {
	cfg config.GatewayConfig
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{cfg: cfg}
}

// PaymentRequest carries the per-order inputs for an outbound redirect.
type PaymentRequest struct {
	OrderID   string
	Amount    int64 // minor currency units
	OrderInfo string
	ClientIP  string
	CreatedAt time.Time
}

// BuildPaymentURL assembles the gateway redirect URL for a pending
// order: fixed protocol fields from configuration, the per-order fields
// from req, and the HMAC signature over the canonical parameter string.
// The signature is appended after the percent-encoded query so the
// gateway can strip it and recompute over the remaining fields.
func (c *Client) BuildPaymentURL(req PaymentRequest) string {
	params := Params{
		fieldVersion:      c.cfg.Version,
		fieldCommand:      c.cfg.Command,
		fieldMerchantCode: c.cfg.MerchantCode,
		fieldAmount:       strconv.FormatInt(req.Amount, 10),
		fieldCurrency:     c.cfg.CurrencyCode,
		fieldTxnRef:       req.OrderID,
		fieldOrderInfo:    req.OrderInfo,
		fieldOrderType:    c.cfg.OrderType,
		fieldLocale:       c.cfg.Locale,
		fieldReturnURL:    c.cfg.ReturnURL,
		fieldIPAddr:       req.ClientIP,
		fieldCreateDate:   req.CreatedAt.Format(createDateLayout),
	}
	sig := Sign(params, c.cfg.HashSecret)

	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	return c.cfg.BaseURL + "?" + values.Encode() + "&" + fieldSecureHash + "=" + sig
}

// CallbackResult is the verified outcome of a gateway return callback.
type CallbackResult struct {
	OrderID      string
	ResponseCode string
	Success      bool
}

// VerifyCallback authenticates an inbound return callback. The
// signature field is stripped from the parameter set, the expected
// signature is recomputed over what remains, and on any mismatch the
// callback is rejected before the response code is ever read. Only a
// verified callback yields a result the caller may act on.
func (c *Client) VerifyCallback(query url.Values) (*CallbackResult, error) {
	received := query.Get(fieldSecureHash)
	if received == "" {
		return nil, ErrMissingSignature
	}

	params := Params{}
	for k := range query {
		if k == fieldSecureHash {
			continue
		}
		params[k] = query.Get(k)
	}

	if !VerifySignature(params, c.cfg.HashSecret, received) {
		return nil, ErrSignatureMismatch
	}

	orderID := params[fieldTxnRef]
	if orderID == "" {
		return nil, ErrMissingTxnRef
	}

	code := params[fieldResponseCode]
	return &CallbackResult{
		OrderID:      orderID,
		ResponseCode: code,
		Success:      code == ResponseCodeSuccess,
	}, nil
}
