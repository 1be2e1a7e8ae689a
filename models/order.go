package models

import "github.com/shopspring/decimal"

// OrderItemRequest is one line of the order-creation payload. SKU carries
// the variant id when the line has one, otherwise the product id.
type OrderItemRequest struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderRequest is the exact shape the remote order-creation endpoint
// accepts. TaxAmount is always zero; tax is not computed client-side.
type OrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress *Address           `json:"shippingAddress"`
	BillingAddress  *Address           `json:"billingAddress"`
	ShippingMethod  string             `json:"shippingMethod"`
	PaymentMethod   string             `json:"paymentMethod"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	ShippingCost    decimal.Decimal    `json:"shippingCost"`
	TaxAmount       decimal.Decimal    `json:"taxAmount"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
}

// OrderConfirmation is what the endpoint returns on success.
type OrderConfirmation struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
}

// PriceQuote is the pricing engine's output for one (cart, shipping method)
// pair.
type PriceQuote struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Total        decimal.Decimal `json:"total"`
}
