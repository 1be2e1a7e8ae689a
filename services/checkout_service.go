package services

import (
	"context"
	"sync"

	"tailor-shop/models"
	"tailor-shop/repositories"

	"go.uber.org/zap"
)

// CanAdvance reports whether the wizard may move forward from the session's
// current step. It is the only validation in the wizard and is evaluated on
// transition attempts, never eagerly: switching to pickup retroactively
// satisfies the address requirement the next time this runs.
func CanAdvance(session *models.CheckoutSession) bool {
	if session == nil {
		return false
	}
	switch session.Step {
	case models.StepAddress:
		return session.Shipping == models.ShippingPickup || session.SelectedAddress != nil
	case models.StepShipping, models.StepPayment:
		return true
	default:
		return false
	}
}

// ReviewSummary is everything the review step shows: the accumulated
// selections, a cart snapshot and the price quote. Composing it performs no
// further validation.
type ReviewSummary struct {
	Session  models.CheckoutSession `json:"session"`
	Cart     models.Cart            `json:"cart"`
	Quote    models.PriceQuote      `json:"quote"`
	Shipping models.ShippingOption  `json:"shipping_option"`
	Payments []models.PaymentMethod `json:"payment_methods"`
}

// CheckoutService runs the four-step wizard. It holds no business data of
// its own beyond the transient session; cart contents come from the
// repository and totals from the pricing service on every read.
type CheckoutService struct {
	cart      *repositories.CartRepository
	pricing   *PricingService
	addresses *AddressService
	orders    *OrderService
	logger    *zap.Logger

	mu      sync.Mutex
	session *models.CheckoutSession
}

func NewCheckoutService(
	cart *repositories.CartRepository,
	pricing *PricingService,
	addresses *AddressService,
	orders *OrderService,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		cart:      cart,
		pricing:   pricing,
		addresses: addresses,
		orders:    orders,
		logger:    logger,
	}
}

// Begin opens a fresh session at the address step, replacing any session
// left over from an abandoned checkout.
func (s *CheckoutService) Begin() *models.CheckoutSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = models.NewCheckoutSession()
	return s.session.Clone()
}

// Session returns a copy of the open session.
func (s *CheckoutService) Session() (*models.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoCheckoutSession
	}
	return s.session.Clone(), nil
}

// Next advances one step. From the address step it is a guarded no-op: the
// step does not move and ErrAddressRequired is returned until an address is
// selected or shipping is pickup.
func (s *CheckoutService) Next() (*models.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoCheckoutSession
	}

	switch s.session.Step {
	case models.StepAddress:
		if !CanAdvance(s.session) {
			return s.session.Clone(), ErrAddressRequired
		}
		s.session.Step = models.StepShipping
	case models.StepShipping:
		s.session.Step = models.StepPayment
	case models.StepPayment:
		s.session.Step = models.StepReview
	case models.StepReview:
		return s.session.Clone(), ErrCannotAdvance
	default:
		return s.session.Clone(), ErrCheckoutCompleted
	}

	return s.session.Clone(), nil
}

// Back moves one step back. From the address step it exits the wizard
// entirely, destroying the session; exited reports which of the two
// happened.
func (s *CheckoutService) Back() (session *models.CheckoutSession, exited bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, false, ErrNoCheckoutSession
	}

	// Submitted is terminal; a completed session accepts no transitions.
	if s.session.Step == models.StepSubmitted {
		return s.session.Clone(), false, ErrCheckoutCompleted
	}

	if s.session.Step <= models.StepAddress {
		s.destroyLocked()
		return nil, true, nil
	}

	s.session.Step--
	return s.session.Clone(), false, nil
}

// SelectAddress resolves the id against the session's cached address list
// and records it.
func (s *CheckoutService) SelectAddress(ctx context.Context, addressID string) error {
	address, err := s.addresses.Get(ctx, addressID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ErrNoCheckoutSession
	}
	s.session.SelectedAddress = address
	return nil
}

// SelectShipping records the shipping method. Switching to pickup is not
// validated eagerly; its effect on the address requirement shows up on the
// next transition attempt.
func (s *CheckoutService) SelectShipping(method models.ShippingMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ErrNoCheckoutSession
	}
	s.session.Shipping = method
	return nil
}

// SelectPayment records the payment method. Methods the submission path does
// not support are still selectable here; they are rejected at submit time.
func (s *CheckoutService) SelectPayment(method models.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ErrNoCheckoutSession
	}
	s.session.Payment = method
	return nil
}

// Review composes the review-step read: selections, cart snapshot and
// quote.
func (s *CheckoutService) Review() (*ReviewSummary, error) {
	s.mu.Lock()
	session := s.session.Clone()
	s.mu.Unlock()

	if session == nil {
		return nil, ErrNoCheckoutSession
	}

	cart := s.cart.Cart()
	quote := s.pricing.Quote(cart, session.Shipping)

	var option models.ShippingOption
	for _, opt := range models.ShippingOptions() {
		if opt.Method == session.Shipping {
			option = opt
			break
		}
	}

	return &ReviewSummary{
		Session:  *session,
		Cart:     cart,
		Quote:    quote,
		Shipping: option,
		Payments: models.PaymentMethods(),
	}, nil
}

// Submit hands the accumulated selections to the order gateway. Only legal
// from the review step; the session moves to submitted only on confirmed
// success and is left untouched on any failure.
func (s *CheckoutService) Submit(ctx context.Context) (*models.OrderConfirmation, error) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil, ErrNoCheckoutSession
	}
	if s.session.Step == models.StepSubmitted {
		s.mu.Unlock()
		return nil, ErrCheckoutCompleted
	}
	if s.session.Step != models.StepReview {
		s.mu.Unlock()
		return nil, ErrNotAtReview
	}
	session := s.session
	s.mu.Unlock()

	confirmation, err := s.orders.Submit(ctx, session)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.session == session {
		s.session.Step = models.StepSubmitted
	}
	s.mu.Unlock()

	s.addresses.Invalidate()
	s.logger.Info("checkout completed",
		zap.String("order_id", confirmation.ID),
		zap.String("order_number", confirmation.OrderNumber))
	return confirmation, nil
}

// Dismiss destroys the session and drops the session-scoped address cache.
// The cart is untouched; abandoning checkout never loses cart contents.
func (s *CheckoutService) Dismiss() {
	s.mu.Lock()
	s.destroyLocked()
	s.mu.Unlock()
}

func (s *CheckoutService) destroyLocked() {
	s.session = nil
	s.addresses.Invalidate()
}
