// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leviz2304/bazaar/internal/models"
)

func TestRegisterLoginMe(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Email:    "pat@example.com",
		Password: "correct-horse-battery",
		Name:     "Pat",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var reg struct {
		Token string         `json:"token"`
		User  models.Profile `json:"user"`
	}
	decodeData(t, rec, &reg)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, models.RoleBuyer, reg.User.Role)

	// Duplicate email is a conflict.
	rec = e.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Email:    "pat@example.com",
		Password: "another-password",
		Name:     "Pat Again",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, rec))

	rec = e.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email:    "pat@example.com",
		Password: "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email:    "pat@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/auth/me", reg.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.Profile
	decodeData(t, rec, &me)
	assert.Equal(t, "pat@example.com", me.Email)
}

func TestSellerStoreAndProductLifecycle(t *testing.T) {
	e := newTestEnv(t)
	token := e.seedUser(t, "alex", models.RoleBuyer)

	// Creating a store promotes the account to seller.
	rec := e.do(t, http.MethodPost, "/api/v1/seller/store", token, StoreCreateRequest{
		Name: "Alex Gear", Slug: "alex-gear",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var s models.Store
	decodeData(t, rec, &s)

	// Old token still carries the buyer role; seller routes need a
	// fresh token.
	rec = e.do(t, http.MethodGet, "/api/v1/seller/store", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	sellerToken, err := e.jwt.GenerateToken("alex", models.RoleSeller)
	require.NoError(t, err)

	rec = e.do(t, http.MethodGet, "/api/v1/seller/store", sellerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/v1/seller/products", sellerToken, ProductRequest{
		Name: "Trail Backpack", Price: 4500, Category: "Outdoor", InStock: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p models.Product
	decodeData(t, rec, &p)
	assert.Equal(t, s.ID, p.StoreID)

	rec = e.do(t, http.MethodPut, "/api/v1/seller/products/"+p.ID, sellerToken, ProductRequest{
		Name: "Trail Backpack v2", Price: 4900, Category: "Outdoor", InStock: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Another seller cannot touch it.
	otherToken := e.seedUser(t, "sam", models.RoleBuyer)
	rec = e.do(t, http.MethodPost, "/api/v1/seller/store", otherToken, StoreCreateRequest{
		Name: "Sam Shop", Slug: "sam-shop",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	samSeller, err := e.jwt.GenerateToken("sam", models.RoleSeller)
	require.NoError(t, err)

	rec = e.do(t, http.MethodDelete, "/api/v1/seller/products/"+p.ID, samSeller, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The owner can delete.
	rec = e.do(t, http.MethodDelete, "/api/v1/seller/products/"+p.ID, sellerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStorefrontBrowsing(t *testing.T) {
	e := newTestEnv(t)
	token := e.seedUser(t, "alex", models.RoleBuyer)
	rec := e.do(t, http.MethodPost, "/api/v1/seller/store", token, StoreCreateRequest{
		Name: "Alex Gear", Slug: "alex-gear",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	sellerToken, err := e.jwt.GenerateToken("alex", models.RoleSeller)
	require.NoError(t, err)

	for _, pr := range []ProductRequest{
		{Name: "Trail Backpack", Price: 4500, Category: "Outdoor", InStock: true},
		{Name: "Running Shoes", Price: 8900, Category: "Footwear", InStock: true},
	} {
		rec = e.do(t, http.MethodPost, "/api/v1/seller/products", sellerToken, pr)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// Unauthenticated catalog browsing.
	rec = e.do(t, http.MethodGet, "/api/v1/products?search="+url.QueryEscape("backpack"), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []models.Product `json:"items"`
		Total int              `json:"total"`
	}
	decodeData(t, rec, &page)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Trail Backpack", page.Items[0].Name)

	rec = e.do(t, http.MethodGet, "/api/v1/products/"+page.Items[0].ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/products/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestCartAndCheckoutEndToEnd(t *testing.T) {
	e := newTestEnv(t)

	sellerBase := e.seedUser(t, "alex", models.RoleBuyer)
	rec := e.do(t, http.MethodPost, "/api/v1/seller/store", sellerBase, StoreCreateRequest{
		Name: "Alex Gear", Slug: "alex-gear",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	sellerToken, err := e.jwt.GenerateToken("alex", models.RoleSeller)
	require.NoError(t, err)

	rec = e.do(t, http.MethodPost, "/api/v1/seller/products", sellerToken, ProductRequest{
		Name: "Widget", Price: 1000, Category: "Misc", InStock: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p models.Product
	decodeData(t, rec, &p)

	buyer := e.seedUser(t, "pat", models.RoleBuyer)

	// Empty-cart checkout is rejected with the contract message.
	rec = e.do(t, http.MethodPost, "/api/v1/orders", buyer, CheckoutRequest{
		Address:       models.Address{FullName: "Pat", Phone: "0900", Line1: "1 Market St", City: "Hanoi"},
		PaymentMethod: models.PaymentCOD,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))

	rec = e.do(t, http.MethodPost, "/api/v1/cart/items", buyer, CartLineRequest{
		ProductID: p.ID, Quantity: 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var cart models.Cart
	decodeData(t, rec, &cart)
	require.Len(t, cart.Lines, 1)

	// COD checkout: amount = 2*1000 + 500 delivery.
	rec = e.do(t, http.MethodPost, "/api/v1/orders", buyer, CheckoutRequest{
		Address:       models.Address{FullName: "Pat", Phone: "0900", Line1: "1 Market St", City: "Hanoi"},
		PaymentMethod: models.PaymentCOD,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var placed struct {
		Order       models.Order `json:"order"`
		RedirectURL string       `json:"redirect_url"`
	}
	decodeData(t, rec, &placed)
	assert.Equal(t, int64(2500), placed.Order.Amount)
	assert.Empty(t, placed.RedirectURL)
	assert.False(t, placed.Order.Paid)

	// Cart is cleared by checkout.
	rec = e.do(t, http.MethodGet, "/api/v1/cart", buyer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &cart)
	assert.Empty(t, cart.Lines)

	// Gateway checkout returns a signed redirect URL.
	rec = e.do(t, http.MethodPost, "/api/v1/cart/items", buyer, CartLineRequest{
		ProductID: p.ID, Quantity: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodPost, "/api/v1/orders", buyer, CheckoutRequest{
		Address:       models.Address{FullName: "Pat", Phone: "0900", Line1: "1 Market St", City: "Hanoi"},
		PaymentMethod: models.PaymentGateway,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeData(t, rec, &placed)
	require.NotEmpty(t, placed.RedirectURL)

	u, err := url.Parse(placed.RedirectURL)
	require.NoError(t, err)
	assert.Equal(t, placed.Order.ID, u.Query().Get("vnp_TxnRef"))
	assert.Equal(t, "1500", u.Query().Get("vnp_Amount"))

	// The buyer sees both orders; a stranger sees neither.
	rec = e.do(t, http.MethodGet, "/api/v1/orders", buyer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orderPage struct {
		Items []models.Order `json:"items"`
		Total int            `json:"total"`
	}
	decodeData(t, rec, &orderPage)
	assert.Equal(t, 2, orderPage.Total)

	stranger := e.seedUser(t, "mallory", models.RoleBuyer)
	rec = e.do(t, http.MethodGet, "/api/v1/orders/"+placed.Order.ID, stranger, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The seller sees the store's orders.
	rec = e.do(t, http.MethodGet, "/api/v1/seller/orders", sellerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &orderPage)
	assert.Equal(t, 2, orderPage.Total)

	// Seller updates fulfilment status.
	rec = e.do(t, http.MethodPut, "/api/v1/seller/orders/"+placed.Order.ID+"/status", sellerToken, OrderStatusRequest{
		Status: "Shipped",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Order
	decodeData(t, rec, &updated)
	assert.Equal(t, "Shipped", updated.Status)
}

func TestAdminSurfaceGated(t *testing.T) {
	e := newTestEnv(t)
	buyer := e.seedUser(t, "pat", models.RoleBuyer)
	admin := e.seedUser(t, "root", models.RoleAdmin)

	rec := e.do(t, http.MethodGet, "/api/v1/admin/users", buyer, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []models.Profile `json:"items"`
		Total int              `json:"total"`
	}
	decodeData(t, rec, &page)
	assert.Equal(t, 2, page.Total)
	for _, profile := range page.Items {
		assert.NotEmpty(t, profile.Email)
	}

	rec = e.do(t, http.MethodGet, "/api/v1/admin/orders", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/admin/stores", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReviewFlow(t *testing.T) {
	e := newTestEnv(t)
	base := e.seedUser(t, "alex", models.RoleBuyer)
	rec := e.do(t, http.MethodPost, "/api/v1/seller/store", base, StoreCreateRequest{
		Name: "Alex Gear", Slug: "alex-gear",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	sellerToken, err := e.jwt.GenerateToken("alex", models.RoleSeller)
	require.NoError(t, err)

	rec = e.do(t, http.MethodPost, "/api/v1/seller/products", sellerToken, ProductRequest{
		Name: "Widget", Price: 1000, Category: "Misc", InStock: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p models.Product
	decodeData(t, rec, &p)

	buyer := e.seedUser(t, "pat", models.RoleBuyer)

	// Anonymous review is rejected.
	rec = e.do(t, http.MethodPost, "/api/v1/products/"+p.ID+"/reviews", "", ReviewRequest{Rating: 5})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/v1/products/"+p.ID+"/reviews", buyer, ReviewRequest{
		Rating: 4, Comment: "solid",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/products/"+p.ID+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reviews []models.Review
	decodeData(t, rec, &reviews)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, "User pat", reviews[0].BuyerName)
}
