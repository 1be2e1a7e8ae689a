package models

import "github.com/shopspring/decimal"

type AddItemRequest struct {
	ProductID    string          `json:"product_id" binding:"required"`
	VariantID    *string         `json:"variant_id"`
	Name         string          `json:"name" binding:"required"`
	VariantLabel *string         `json:"variant_label"`
	UnitPrice    decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity     int             `json:"quantity"`
	ImageURL     *string         `json:"image_url"`
	MaxQuantity  int             `json:"max_quantity"`
}

type UpdateQuantityRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	VariantID *string `json:"variant_id"`
	Quantity  int     `json:"quantity"`
}

type RemoveItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	VariantID *string `json:"variant_id"`
}

type SelectAddressRequest struct {
	AddressID string `json:"address_id" binding:"required"`
}

type SelectShippingRequest struct {
	Method string `json:"method" binding:"required"`
}

type SelectPaymentRequest struct {
	Method string `json:"method" binding:"required"`
}
