package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type ShippingMethod string

const (
	ShippingPickup    ShippingMethod = "pickup"
	ShippingStandard  ShippingMethod = "standard"
	ShippingExpress   ShippingMethod = "express"
	ShippingOvernight ShippingMethod = "overnight"
)

// ShippingOption pairs a method with its fixed cost and lead time.
type ShippingOption struct {
	Method   ShippingMethod  `json:"method"`
	Label    string          `json:"label"`
	Cost     decimal.Decimal `json:"cost"`
	LeadTime string          `json:"lead_time"`
}

// ShippingOptions is the fixed shipping table. Pickup is free and waives the
// address requirement.
func ShippingOptions() []ShippingOption {
	return []ShippingOption{
		{Method: ShippingPickup, Label: "Pickup in store", Cost: decimal.Zero, LeadTime: "Ready in 2 hours"},
		{Method: ShippingStandard, Label: "Standard delivery", Cost: decimal.NewFromInt(5000), LeadTime: "3-5 business days"},
		{Method: ShippingExpress, Label: "Express delivery", Cost: decimal.NewFromInt(12000), LeadTime: "1-2 business days"},
		{Method: ShippingOvernight, Label: "Overnight delivery", Cost: decimal.NewFromInt(25000), LeadTime: "Next business day"},
	}
}

// ParseShippingMethod validates a raw method string against the fixed table.
func ParseShippingMethod(raw string) (ShippingMethod, error) {
	for _, opt := range ShippingOptions() {
		if string(opt.Method) == raw {
			return opt.Method, nil
		}
	}
	return "", fmt.Errorf("unknown shipping method: %q", raw)
}

// ShippingCost looks up the fixed cost for a method. Pickup always costs
// zero.
func ShippingCost(method ShippingMethod) decimal.Decimal {
	if method == ShippingPickup {
		return decimal.Zero
	}
	for _, opt := range ShippingOptions() {
		if opt.Method == method {
			return opt.Cost
		}
	}
	return decimal.Zero
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash-on-delivery"
	PaymentMobileMoney    PaymentMethod = "mobile-money"
	PaymentCard           PaymentMethod = "card"
)

// PaymentMethods lists every method the review screen presents, enabled or
// not.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCashOnDelivery, PaymentMobileMoney, PaymentCard}
}

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	for _, m := range PaymentMethods() {
		if string(m) == raw {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment method: %q", raw)
}

// Supported reports whether the submission path accepts the method. Only
// cash on delivery is enabled end to end; the others are presented but
// rejected locally before any network call.
func (m PaymentMethod) Supported() bool {
	return m == PaymentCashOnDelivery
}

type CheckoutStep int

const (
	StepAddress CheckoutStep = iota + 1
	StepShipping
	StepPayment
	StepReview
	StepSubmitted
)

func (s CheckoutStep) String() string {
	switch s {
	case StepAddress:
		return "address"
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	case StepSubmitted:
		return "submitted"
	}
	return "unknown"
}

// CheckoutSession is the transient wizard state. It exists only while the
// wizard is open and is destroyed on dismissal or completion.
type CheckoutSession struct {
	Step            CheckoutStep   `json:"step"`
	SelectedAddress *Address       `json:"selected_address,omitempty"`
	Shipping        ShippingMethod `json:"shipping"`
	Payment         PaymentMethod  `json:"payment"`
	IsSubmitting    bool           `json:"is_submitting"`
}

// NewCheckoutSession starts a session at the address step with the cheapest
// defaults the source client preselects.
func NewCheckoutSession() *CheckoutSession {
	return &CheckoutSession{
		Step:     StepAddress,
		Shipping: ShippingStandard,
		Payment:  PaymentCashOnDelivery,
	}
}

// Clone copies the session, including the selected address, so failure paths
// can guarantee the original is untouched.
func (s *CheckoutSession) Clone() *CheckoutSession {
	if s == nil {
		return nil
	}
	out := *s
	if s.SelectedAddress != nil {
		addr := *s.SelectedAddress
		out.SelectedAddress = &addr
	}
	return &out
}
