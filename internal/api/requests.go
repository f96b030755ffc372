// Bazaar - Multi-Tenant Marketplace Commerce Backend
// Copyright 2026 Le Viz (leviz2304)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leviz2304/bazaar

package api

import "github.com/leviz2304/bazaar/internal/models"

// Request bodies. Validation tags follow go-playground/validator.

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type StoreCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Slug        string `json:"slug" validate:"required,min=2,max=60,lowercase,excludesall= "`
	Description string `json:"description" validate:"max=2000"`
	Logo        string `json:"logo" validate:"omitempty,url"`
}

type StoreUpdateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Logo        string `json:"logo" validate:"omitempty,url"`
}

type ProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required,min=1,max=60"`
	Colors      []string `json:"colors" validate:"max=20,dive,max=40"`
	Images      []string `json:"images" validate:"max=10,dive,url"`
	InStock     bool     `json:"in_stock"`
}

type CartLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color" validate:"max=40"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,lte=1000"`
}

type CheckoutRequest struct {
	Address       models.Address       `json:"address" validate:"required"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required,oneof=cod gateway"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='Order Placed' Packing Shipped 'Out for delivery' Delivered"`
}
