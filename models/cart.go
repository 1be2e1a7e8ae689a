package models

import (
	"github.com/shopspring/decimal"
)

// DefaultMaxQuantity is used when the catalog did not report stock for an
// item at add time.
const DefaultMaxQuantity = 999999

// CartLineItem is one entry in the local cart. UnitPrice is a snapshot taken
// when the item was added and is never re-fetched; MaxQuantity is the stock
// ceiling the catalog reported at the same moment.
type CartLineItem struct {
	ProductID    string          `json:"product_id"`
	VariantID    *string         `json:"variant_id,omitempty"`
	Name         string          `json:"name"`
	VariantLabel *string         `json:"variant_label,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	ImageURL     *string         `json:"image_url,omitempty"`
	MaxQuantity  int             `json:"max_quantity"`
}

// Key returns the identity key deciding whether two additions merge into one
// line or stay separate entries.
func (i CartLineItem) Key() string {
	if i.VariantID == nil {
		return i.ProductID
	}
	return i.ProductID + "|" + *i.VariantID
}

// LineTotal is unit price times quantity.
func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ClampQuantity constrains q to [1, max]. A non-positive max means the
// ceiling is unknown and the default sentinel applies.
func ClampQuantity(q, max int) int {
	if max <= 0 {
		max = DefaultMaxQuantity
	}
	if q < 1 {
		return 1
	}
	if q > max {
		return max
	}
	return q
}

// Cart is the ordered list of line items. Insertion order is preserved for
// display only.
type Cart struct {
	Items []CartLineItem `json:"items"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems sums all quantities.
func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums unit price times quantity over all entries.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the backing slice.
func (c Cart) Clone() Cart {
	items := make([]CartLineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}
