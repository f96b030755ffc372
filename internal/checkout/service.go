// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

// Package checkout turns a buyer's cart into a persisted order and, for
// gateway payments, a signed redirect URL.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leviz2304/bazaar/internal/config"
	"github.com/leviz2304/bazaar/internal/gateway"
	"github.com/leviz2304/bazaar/internal/logging"
	"github.com/leviz2304/bazaar/internal/models"
	"github.com/leviz2304/bazaar/internal/store"
)

// Validation failures surfaced to the buyer. The messages are the API
// contract; handlers pass them through verbatim.
var (
	ErrEmptyCart      = errors.New("No items in the cart")
	ErrMixedStores    = errors.New("all products must be from the same store")
	ErrMissingAddress = errors.New("shipping address is incomplete")
)

// Service orchestrates checkout over the store layer and the payment
// gateway client.
type Service struct {
	store   *store.Store
	gateway *gateway.Client
	cfg     config.CheckoutConfig
}

func NewService(s *store.Store, g *gateway.Client, cfg config.CheckoutConfig) *Service {
	return &Service{store: s, gateway: g, cfg: cfg}
}

// Request is one checkout attempt by an authenticated buyer.
type Request struct {
	BuyerID       string
	Address       models.Address
	PaymentMethod models.PaymentMethod
	ClientIP      string
}

// Result reports the created order and, for gateway payments, the URL
// the client must redirect the buyer to. RedirectURL is empty for cash
// on delivery.
type Result struct {
	Order       *models.Order
	RedirectURL string
}

// Checkout validates the buyer's cart and address, snapshots products
// into a new unpaid order, clears the cart, and for the gateway path
// builds the signed redirect URL.
//
// The cart is cleared as soon as the order is persisted, before any
// payment confirmation. A failed gateway payment therefore does not
// restore the cart; the buyer re-adds items.
func (s *Service) Checkout(ctx context.Context, req Request) (*Result, error) {
	if err := validateAddress(req.Address); err != nil {
		return nil, err
	}

	cart, err := s.store.Carts.Get(ctx, req.BuyerID)
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	if len(cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]string, len(cart.Lines))
	for i, line := range cart.Lines {
		ids[i] = line.ProductID
	}
	products, err := s.store.Products.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving cart products: %w", err)
	}

	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// One order is scoped to exactly one seller.
	storeID := products[0].StoreID
	for i := range products {
		if products[i].StoreID != storeID {
			return nil, ErrMixedStores
		}
	}

	var amount int64
	items := make([]models.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		p := byID[line.ProductID]
		amount += p.Price * int64(line.Quantity)

		var image string
		if len(p.Images) > 0 {
			image = p.Images[0]
		}
		items = append(items, models.OrderItem{
			Product: models.ProductSnapshot{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Image:     image,
			},
			Color:    line.Color,
			Quantity: line.Quantity,
		})
	}
	amount += s.cfg.DeliveryCharge

	order := &models.Order{
		ID:            uuid.NewString(),
		BuyerID:       req.BuyerID,
		StoreID:       storeID,
		Items:         items,
		Amount:        amount,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		Paid:          false,
		Status:        models.StatusOrderPlaced,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.Orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persisting order: %w", err)
	}

	if err := s.store.Carts.Clear(ctx, req.BuyerID); err != nil {
		// The order exists; a stale cart is recoverable.
		logger := logging.Ctx(ctx)
		logger.Warn().Err(err).
			Str("order_id", order.ID).
			Msg("order created but cart clear failed")
	}

	result := &Result{Order: order}
	if req.PaymentMethod == models.PaymentGateway {
		result.RedirectURL = s.gateway.BuildPaymentURL(gateway.PaymentRequest{
			OrderID:   order.ID,
			Amount:    order.Amount,
			OrderInfo: fmt.Sprintf("Bazaar order %s", order.ID),
			ClientIP:  req.ClientIP,
			CreatedAt: order.CreatedAt,
		})
	}

	logger := logging.Ctx(ctx)
	logger.Info().
		Str("order_id", order.ID).
		Str("buyer_id", order.BuyerID).
		Str("store_id", order.StoreID).
		Int64("amount", order.Amount).
		Str("payment_method", string(order.PaymentMethod)).
		Msg("order placed")

	return result, nil
}

// Settle applies a verified gateway callback outcome to the referenced
// order. The store layer enforces that a settled order never reverts.
func (s *Service) Settle(ctx context.Context, result *gateway.CallbackResult) error {
	status := models.StatusPaymentFailed
	paid := false
	if result.Success {
		status = models.StatusPaid
		paid = true
	}

	err := s.store.Orders.SettlePayment(ctx, result.OrderID, paid, status)
	switch {
	case errors.Is(err, store.ErrOrderSettled):
		logger := logging.Ctx(ctx)
		logger.Warn().
			Str("order_id", result.OrderID).
			Str("response_code", result.ResponseCode).
			Msg("stale callback for settled order rejected")
		return err
	case err != nil:
		return err
	}

	logger := logging.Ctx(ctx)
	logger.Info().
		Str("order_id", result.OrderID).
		Bool("paid", paid).
		Msg("payment settled")
	return nil
}

func validateAddress(a models.Address) error {
	if a.FullName == "" || a.Phone == "" || a.Line1 == "" || a.City == "" {
		return ErrMissingAddress
	}
	return nil
}
