package services

import (
	"tailor-shop/models"

	"github.com/shopspring/decimal"
)

// PricingService is a pure computation over cart contents and a shipping
// selection. It holds no state and is fully deterministic.
type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

func (s *PricingService) Subtotal(cart models.Cart) decimal.Decimal {
	return cart.TotalPrice()
}

func (s *PricingService) ShippingCost(method models.ShippingMethod) decimal.Decimal {
	return models.ShippingCost(method)
}

// Quote prices the cart against the selected shipping method. Tax is not
// computed client-side and is always zero.
func (s *PricingService) Quote(cart models.Cart, method models.ShippingMethod) models.PriceQuote {
	subtotal := s.Subtotal(cart)
	shipping := s.ShippingCost(method)

	return models.PriceQuote{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		TaxAmount:    decimal.Zero,
		Total:        subtotal.Add(shipping),
	}
}
