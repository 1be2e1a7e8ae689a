package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"tailor-shop/libs"
	"tailor-shop/models"
	"tailor-shop/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pickupSession() *models.CheckoutSession {
	return &models.CheckoutSession{
		Step:     models.StepReview,
		Shipping: models.ShippingPickup,
		Payment:  models.PaymentCashOnDelivery,
	}
}

func deliverySession() *models.CheckoutSession {
	return &models.CheckoutSession{
		Step:            models.StepReview,
		Shipping:        models.ShippingStandard,
		Payment:         models.PaymentCashOnDelivery,
		SelectedAddress: &models.Address{ID: "addr-1", FullName: "Ayu Lestari"},
	}
}

func newOrderFixture(t *testing.T, api ShopAPI) (*OrderService, *repositories.CartRepository) {
	t.Helper()
	cart := repositories.NewCartRepository(memStore{}, zap.NewNop())
	return NewOrderService(cart, NewPricingService(), api, 0, zap.NewNop()), cart
}

func addLine(cart *repositories.CartRepository) {
	cart.AddItem(models.CartLineItem{
		ProductID:   "suit-3",
		Name:        "Wool Suit",
		UnitPrice:   decimal.NewFromInt(90000),
		Quantity:    1,
		MaxQuantity: 3,
	})
}

func TestSubmitEmptyCartRejectedLocally(t *testing.T) {
	api := &stubAPI{}
	orders, _ := newOrderFixture(t, api)

	_, err := orders.Submit(context.Background(), pickupSession())

	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Equal(t, int32(0), api.calls.Load(), "guard violations make no network call")
}

func TestSubmitMissingAddressRejectedLocally(t *testing.T) {
	api := &stubAPI{}
	orders, cart := newOrderFixture(t, api)
	addLine(cart)

	session := deliverySession()
	session.SelectedAddress = nil

	_, err := orders.Submit(context.Background(), session)

	assert.ErrorIs(t, err, ErrAddressRequired)
	assert.Equal(t, int32(0), api.calls.Load())
}

func TestSubmitUnsupportedPaymentRejectedLocally(t *testing.T) {
	for _, method := range []models.PaymentMethod{models.PaymentMobileMoney, models.PaymentCard} {
		t.Run(string(method), func(t *testing.T) {
			api := &stubAPI{}
			orders, cart := newOrderFixture(t, api)
			addLine(cart)

			session := pickupSession()
			session.Payment = method

			_, err := orders.Submit(context.Background(), session)

			assert.ErrorIs(t, err, ErrPaymentMethodUnsupported)
			assert.Equal(t, int32(0), api.calls.Load())
		})
	}
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	api := &stubAPI{confirmation: &models.OrderConfirmation{ID: "o-9", OrderNumber: "TS-2042"}}
	orders, cart := newOrderFixture(t, api)
	addLine(cart)

	confirmation, err := orders.Submit(context.Background(), pickupSession())

	require.NoError(t, err)
	assert.Equal(t, "TS-2042", confirmation.OrderNumber)
	assert.Equal(t, int32(1), api.calls.Load())
	assert.True(t, cart.Cart().IsEmpty())
}

func TestSubmitFailureLeavesCartIntact(t *testing.T) {
	api := &stubAPI{err: &libs.APIError{StatusCode: 409, Message: "insufficient stock for Wool Suit"}}
	orders, cart := newOrderFixture(t, api)
	addLine(cart)
	addLine(cart) // merge to quantity 2

	before := cart.Cart()
	session := pickupSession()

	_, err := orders.Submit(context.Background(), session)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.False(t, submitErr.Retryable)
	assert.Equal(t, "insufficient stock for Wool Suit", submitErr.Message)

	assert.Equal(t, before, cart.Cart(), "cart must be identical after a failed submit")
	assert.Equal(t, models.StepReview, session.Step)
	assert.False(t, session.IsSubmitting)
}

func TestSubmitServerRejectionWithoutMessageGetsFallback(t *testing.T) {
	api := &stubAPI{err: &libs.APIError{StatusCode: 500}}
	orders, cart := newOrderFixture(t, api)
	addLine(cart)

	_, err := orders.Submit(context.Background(), pickupSession())

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, "the order could not be placed", submitErr.Message)
}

func TestSubmitTransportFailureIsRetryable(t *testing.T) {
	api := &stubAPI{err: context.DeadlineExceeded}
	orders, cart := newOrderFixture(t, api)
	addLine(cart)

	_, err := orders.Submit(context.Background(), pickupSession())

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.True(t, submitErr.Retryable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConcurrentSubmitMakesExactlyOneCall(t *testing.T) {
	api := &stubAPI{
		confirmation: &models.OrderConfirmation{ID: "o-1", OrderNumber: "TS-1"},
		release:      make(chan struct{}),
	}
	orders, cart := newOrderFixture(t, api)
	addLine(cart)

	session := pickupSession()

	var wg sync.WaitGroup
	wg.Add(1)
	firstErr := make(chan error, 1)
	go func() {
		defer wg.Done()
		_, err := orders.Submit(context.Background(), session)
		firstErr <- err
	}()

	// Wait for the first submission to take the in-flight guard.
	require.Eventually(t, func() bool {
		return api.calls.Load() == 1
	}, time.Second, time.Millisecond)

	_, err := orders.Submit(context.Background(), session)
	assert.ErrorIs(t, err, ErrSubmissionInFlight, "double-tap is rejected without a second request")

	close(api.release)
	wg.Wait()
	require.NoError(t, <-firstErr)

	assert.Equal(t, int32(1), api.calls.Load())
}

func TestComposedOrderCarriesQuoteAndWireShape(t *testing.T) {
	var captured models.OrderRequest
	api := &captureAPI{confirmation: &models.OrderConfirmation{ID: "o-1", OrderNumber: "TS-1"}, captured: &captured}
	orders, cart := newOrderFixture(t, api)

	variant := "slim"
	image := "https://cdn.example.com/shirt.jpg"
	cart.AddItem(models.CartLineItem{
		ProductID:   "shirt-1",
		VariantID:   &variant,
		Name:        "Linen Shirt",
		UnitPrice:   decimal.NewFromInt(1000),
		Quantity:    2,
		ImageURL:    &image,
		MaxQuantity: 5,
	})

	_, err := orders.Submit(context.Background(), deliverySession())
	require.NoError(t, err)

	require.Len(t, captured.Items, 1)
	item := captured.Items[0]
	assert.Equal(t, "shirt-1", item.ID)
	assert.Equal(t, "slim", item.SKU)
	assert.Equal(t, image, item.Image)
	assert.Equal(t, 2, item.Quantity)

	assert.Equal(t, "addr-1", captured.ShippingAddress.ID)
	assert.Equal(t, "standard", captured.ShippingMethod)
	assert.Equal(t, "cash-on-delivery", captured.PaymentMethod)
	assert.True(t, decimal.NewFromInt(2000).Equal(captured.Subtotal))
	assert.True(t, captured.TaxAmount.IsZero())
	assert.True(t, captured.Subtotal.Add(captured.ShippingCost).Equal(captured.TotalAmount))
}

func TestComposedPickupOrderHasNoAddress(t *testing.T) {
	var captured models.OrderRequest
	api := &captureAPI{confirmation: &models.OrderConfirmation{ID: "o-1", OrderNumber: "TS-1"}, captured: &captured}
	orders, cart := newOrderFixture(t, api)
	addLine(cart)

	session := pickupSession()
	session.SelectedAddress = &models.Address{ID: "addr-1"} // leftover selection

	_, err := orders.Submit(context.Background(), session)
	require.NoError(t, err)

	assert.Nil(t, captured.ShippingAddress)
	assert.Nil(t, captured.BillingAddress)
	assert.True(t, captured.ShippingCost.IsZero())
}

type captureAPI struct {
	confirmation *models.OrderConfirmation
	captured     *models.OrderRequest
	keys         []string
}

func (a *captureAPI) CreateOrder(ctx context.Context, order models.OrderRequest, key string) (*models.OrderConfirmation, error) {
	*a.captured = order
	a.keys = append(a.keys, key)
	return a.confirmation, nil
}
