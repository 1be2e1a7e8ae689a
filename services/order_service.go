package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"tailor-shop/libs"
	"tailor-shop/models"
	"tailor-shop/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShopAPI is the slice of the remote API the gateway needs.
type ShopAPI interface {
	CreateOrder(ctx context.Context, order models.OrderRequest, idempotencyKey string) (*models.OrderConfirmation, error)
}

// OrderService is the order submission gateway: it issues exactly one
// order-creation call per accepted Submit, clears the cart on success and
// leaves everything untouched on failure. Retries are always user-initiated.
type OrderService struct {
	cart    *repositories.CartRepository
	pricing *PricingService
	api     ShopAPI
	timeout time.Duration
	logger  *zap.Logger

	// inFlight blocks a second submission while one is outstanding. A
	// double-tap must never create two orders.
	inFlight atomic.Bool
}

func NewOrderService(
	cart *repositories.CartRepository,
	pricing *PricingService,
	api ShopAPI,
	timeout time.Duration,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		cart:    cart,
		pricing: pricing,
		api:     api,
		timeout: timeout,
		logger:  logger,
	}
}

// Submit validates the local preconditions, then issues the single
// order-creation request. Guard violations and unsupported payment methods
// are rejected before any network traffic.
func (s *OrderService) Submit(ctx context.Context, session *models.CheckoutSession) (*models.OrderConfirmation, error) {
	cart := s.cart.Cart()
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}
	if session.Shipping != models.ShippingPickup && session.SelectedAddress == nil {
		return nil, ErrAddressRequired
	}
	if !session.Payment.Supported() {
		return nil, ErrPaymentMethodUnsupported
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	session.IsSubmitting = true
	defer func() {
		session.IsSubmitting = false
		s.inFlight.Store(false)
	}()

	order := s.composeOrder(cart, session)
	idempotencyKey := uuid.NewString()

	// Zero timeout means the caller's context governs the wait.
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	confirmation, err := s.api.CreateOrder(ctx, order, idempotencyKey)
	if err != nil {
		return nil, s.classify(err)
	}

	s.cart.Clear()
	s.logger.Info("order created",
		zap.String("order_id", confirmation.ID),
		zap.String("order_number", confirmation.OrderNumber),
		zap.String("idempotency_key", idempotencyKey))
	return confirmation, nil
}

func (s *OrderService) composeOrder(cart models.Cart, session *models.CheckoutSession) models.OrderRequest {
	items := make([]models.OrderItemRequest, 0, len(cart.Items))
	for _, line := range cart.Items {
		sku := line.ProductID
		if line.VariantID != nil {
			sku = *line.VariantID
		}
		image := ""
		if line.ImageURL != nil {
			image = *line.ImageURL
		}
		items = append(items, models.OrderItemRequest{
			ID:       line.ProductID,
			Name:     line.Name,
			SKU:      sku,
			Image:    image,
			Quantity: line.Quantity,
			Price:    line.UnitPrice,
		})
	}

	// Pickup orders carry no address at all.
	var address *models.Address
	if session.Shipping != models.ShippingPickup {
		address = session.SelectedAddress
	}

	quote := s.pricing.Quote(cart, session.Shipping)

	return models.OrderRequest{
		Items:           items,
		ShippingAddress: address,
		BillingAddress:  address,
		ShippingMethod:  string(session.Shipping),
		PaymentMethod:   string(session.Payment),
		Subtotal:        quote.Subtotal,
		ShippingCost:    quote.ShippingCost,
		TaxAmount:       quote.TaxAmount,
		TotalAmount:     quote.Total,
	}
}

// classify splits failures into server rejections (surface the server's
// message, user must change something) and transport failures (retryable
// as-is).
func (s *OrderService) classify(err error) error {
	var apiErr *libs.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = "the order could not be placed"
		}
		s.logger.Warn("order rejected by server",
			zap.Int("status", apiErr.StatusCode), zap.String("message", apiErr.Message))
		return &SubmitError{Retryable: false, Message: message, Err: err}
	}

	s.logger.Warn("order submission transport failure", zap.Error(err))
	return &SubmitError{
		Retryable: true,
		Message:   "could not reach the shop, check your connection and try again",
		Err:       err,
	}
}
