package services

import "errors"

// Guard violations, detected locally before any network call. The wizard
// and cart are left unchanged when any of these is returned.
var (
	ErrCartEmpty                = errors.New("cart is empty")
	ErrAddressRequired          = errors.New("a shipping address is required")
	ErrSubmissionInFlight       = errors.New("an order submission is already in progress")
	ErrPaymentMethodUnsupported = errors.New("payment method is not yet supported")
	ErrNoCheckoutSession        = errors.New("no checkout session is open")
	ErrNotAtReview              = errors.New("order can only be submitted from the review step")
	ErrCannotAdvance            = errors.New("cannot advance past the review step")
	ErrCheckoutCompleted        = errors.New("checkout already completed")
	ErrAddressNotFound          = errors.New("address not found")
)

// SubmitError wraps a failed submission attempt. Retryable distinguishes
// transport failures (resubmit as-is) from server rejections (the user must
// change the offending selection first). Message is safe to show the user.
type SubmitError struct {
	Retryable bool
	Message   string
	Err       error
}

func (e *SubmitError) Error() string {
	return e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
